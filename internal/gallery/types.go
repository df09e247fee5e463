package gallery

import (
	"strings"
	"time"
)

// ImageEntry is one image found in a directory scan.
type ImageEntry struct {
	// Name is the basename of the file.
	Name string `json:"name"`
	// ModTime is the modification time; only meaningful when HasModTime is set.
	ModTime time.Time `json:"modTime"`
	// HasModTime is false when the timestamp could not be read.
	HasModTime bool  `json:"hasModTime"`
	Size       int64 `json:"size"`
}

// SubdirEntry is a navigable subdirectory.
type SubdirEntry struct {
	Name string `json:"name"`
	// Path is relative to the gallery root and uses forward slashes.
	Path string `json:"path"`
}

// SortField specifies which field to sort by.
type SortField string

// SortOrder specifies the direction of sorting.
type SortOrder string

const (
	// SortByName sorts case-insensitively by filename.
	SortByName SortField = "name"
	// SortByDate sorts by modification time.
	SortByDate SortField = "date"

	// SortAsc sorts in ascending order.
	SortAsc SortOrder = "asc"
	// SortDesc sorts in descending order.
	SortDesc SortOrder = "desc"
)

// SortMode combines a sort field and direction.
type SortMode struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// SortDefaults are used when a request does not name a valid sort.
type SortDefaults struct {
	Field SortField
	// DateOrder is the direction used for date sorting when none is requested.
	// Name sorting defaults to ascending.
	DateOrder SortOrder
}

// DefaultSortDefaults sorts by date, newest first.
func DefaultSortDefaults() SortDefaults {
	return SortDefaults{Field: SortByDate, DateOrder: SortDesc}
}

// ParseSortField returns the field named by s, if valid.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case SortByName:
		return SortByName, true
	case SortByDate:
		return SortByDate, true
	}
	return "", false
}

// ParseSortOrder returns the order named by s, if valid.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	}
	return "", false
}

// ParseSortMode builds a SortMode from untrusted request values, falling back
// to d for anything missing or invalid.
func ParseSortMode(field, order string, d SortDefaults) SortMode {
	mode := SortMode{Field: d.Field}
	if f, ok := ParseSortField(field); ok {
		mode.Field = f
	}
	if mode.Field == "" {
		mode.Field = SortByDate
	}

	if o, ok := ParseSortOrder(order); ok {
		mode.Order = o
		return mode
	}

	mode.Order = SortAsc
	if mode.Field == SortByDate && d.DateOrder != "" {
		mode.Order = d.DateOrder
	}
	return mode
}
