// Package indexer builds an offline index of every gallery image under a
// directory tree.
//
// A Walker enumerates the tree on one goroutine and stats the candidate
// files on a pool of workers. Files are selected with the same filename
// rule the gallery lister uses (mediatypes.IsGalleryImage). The result is a
// slice of Records sorted earliest first by modification time. Files that
// cannot be read are logged and skipped; they never abort the walk.
//
// With Dimensions enabled the workers also decode each image header to
// record its width and height. JPEG, PNG, GIF, BMP, TIFF and WebP are
// understood; other formats are indexed without dimensions.
package indexer
