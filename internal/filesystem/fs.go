package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// Operation names reported to the Observer.
const (
	OpReadDir = "readdir"
	OpStat    = "stat"
	OpLstat   = "lstat"
	OpOpen    = "open"
)

func record(operation string, start time.Time, err error) {
	o := observe()
	if o == nil {
		return
	}
	// A missing path is an answer, not a failure of the filesystem.
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	o.ObserveOperation(operation, time.Since(start).Seconds(), err)
}

// ReadDir wraps os.ReadDir.
func ReadDir(path string) ([]os.DirEntry, error) {
	start := time.Now()
	entries, err := os.ReadDir(path)
	record(OpReadDir, start, err)
	return entries, err
}

// Stat wraps os.Stat. Symlinks are followed.
func Stat(path string) (os.FileInfo, error) {
	start := time.Now()
	info, err := os.Stat(path)
	record(OpStat, start, err)
	return info, err
}

// EntryInfo wraps DirEntry.Info, which describes the entry itself without
// following symlinks.
func EntryInfo(entry os.DirEntry) (os.FileInfo, error) {
	start := time.Now()
	info, err := entry.Info()
	record(OpLstat, start, err)
	return info, err
}

// Open wraps os.Open.
func Open(path string) (*os.File, error) {
	start := time.Now()
	file, err := os.Open(path)
	record(OpOpen, start, err)
	return file, err
}
