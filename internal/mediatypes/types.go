package mediatypes

import (
	"path/filepath"
	"strings"
)

// MetadataPrefix marks AppleDouble resource-fork files ("._IMG_0001.jpg")
// that carry an image extension but no image data.
const MetadataPrefix = "._"

// HiddenPrefix marks hidden files and directories.
const HiddenPrefix = "."

// ImageExtensions maps lowercase file extensions to whether they are gallery images.
var ImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
	".heif": true,
}

// MimeTypes maps gallery image extensions to their MIME types.
var MimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".heif": "image/heif",
}

// Ext returns the lowercase extension of name including the leading dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// IsImageName reports whether name ends in a recognized image extension.
// The match is case-insensitive; extensionless names never match.
func IsImageName(name string) bool {
	return ImageExtensions[Ext(name)]
}

// IsMetadataFile reports whether name is a platform metadata file.
func IsMetadataFile(name string) bool {
	return strings.HasPrefix(name, MetadataPrefix)
}

// IsHidden reports whether name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenPrefix)
}

// IsGalleryImage is the filename rule shared by the directory lister, the
// offline indexer and the symlink-farm builder: a recognized image extension
// and not a metadata file.
func IsGalleryImage(name string) bool {
	return IsImageName(name) && !IsMetadataFile(name)
}

// GetMimeType returns the MIME type for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".jpg").
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
