package database

import "time"

// Image is one row of the images table.
type Image struct {
	Path    string
	ModTime time.Time
	Width   int
	Height  int
}

// Metadata keys written by ReplaceImages.
const (
	MetaLastIndexed = "last_indexed"
	MetaImageCount  = "image_count"
)
