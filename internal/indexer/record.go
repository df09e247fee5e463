package indexer

import (
	"encoding/json"
	"sort"
	"time"
)

// Record is one indexed image.
type Record struct {
	// Path is absolute.
	Path    string
	ModTime time.Time
	Width   int
	Height  int
}

type recordJSON struct {
	Path   string  `json:"path"`
	MTime  float64 `json:"mtime"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

// MarshalJSON encodes the modification time as fractional Unix seconds.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Path:   r.Path,
		MTime:  float64(r.ModTime.UnixNano()) / 1e9,
		Width:  r.Width,
		Height: r.Height,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	sec := int64(raw.MTime)
	nsec := int64((raw.MTime - float64(sec)) * 1e9)
	*r = Record{
		Path:    raw.Path,
		ModTime: time.Unix(sec, nsec),
		Width:   raw.Width,
		Height:  raw.Height,
	}
	return nil
}

// SortRecords orders records earliest first. Equal times fall back to the
// path so the output is reproducible.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].ModTime.Equal(records[j].ModTime) {
			return records[i].ModTime.Before(records[j].ModTime)
		}
		return records[i].Path < records[j].Path
	})
}
