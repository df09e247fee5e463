// Package linkfarm builds a flat directory of symlinks to the images found
// under a source tree, for the server's --flat mode.
//
// Links are named after the image's base name. When two images share a name
// the first one found wins and later ones are skipped. The number of links
// is capped (DefaultLimit) so the flat gallery stays a manageable size.
// On Linux each link also gets the access and modification times of its
// target.
package linkfarm
