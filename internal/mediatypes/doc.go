// Package mediatypes holds the filename rules that decide what counts as a
// gallery image.
//
// This package exists as a dependency-free foundation that can be imported by
// the gallery lister, the indexer and the link-farm builder without creating
// import cycles, so the three agree on exactly which files are images.
//
// # Extension Detection
//
// Matching is case-insensitive against a fixed allow-list:
//
//	png, jpg, jpeg, gif, bmp, tiff, webp, heif
//
// Names starting with "._" (AppleDouble metadata) are never images even when
// they carry an image extension:
//
//	mediatypes.IsGalleryImage("IMG_0001.JPG")   // true
//	mediatypes.IsGalleryImage("._IMG_0001.JPG") // false
//	mediatypes.IsGalleryImage("notes.txt")      // false
//
// # MIME Types
//
// GetMimeType returns the Content-Type served for an extension:
//
//	mediatypes.GetMimeType(mediatypes.Ext("photo.webp")) // "image/webp"
package mediatypes
