package gallery

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"imgserve/internal/confine"
	"imgserve/internal/filesystem"
	"imgserve/internal/logging"
	"imgserve/internal/mediatypes"
	"imgserve/internal/metrics"
)

// Lister scans directories below the gallery root. It keeps no state between
// calls: every listing reflects the filesystem at the time of the scan.
type Lister struct {
	resolver *confine.Resolver

	// entryInfo reads the timestamp of a regular file entry.
	entryInfo func(os.DirEntry) (os.FileInfo, error)
}

// NewLister creates a Lister. The resolver supplies the root that
// subdirectory paths are made relative to.
func NewLister(resolver *confine.Resolver) *Lister {
	return &Lister{
		resolver:  resolver,
		entryInfo: filesystem.EntryInfo,
	}
}

// ListImages returns the images directly inside dir, ordered by mode.
// A missing or unreadable directory yields an empty result. Problems with
// individual files never fail the listing: a file whose timestamp cannot be
// read is kept without one.
func (l *Lister) ListImages(dir string, mode SortMode) []ImageEntry {
	start := time.Now()
	status := "success"
	defer func() {
		metrics.ScannerOperationsTotal.WithLabelValues("list_images", status).Inc()
		metrics.ScannerOperationDuration.WithLabelValues("list_images").Observe(time.Since(start).Seconds())
	}()

	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		status = "error"
		logging.Debug("Listing %s failed, returning no images: %v", dir, err)
		return []ImageEntry{}
	}

	images := make([]ImageEntry, 0, len(entries))
	for _, entry := range entries {
		if !mediatypes.IsGalleryImage(entry.Name()) {
			continue
		}
		if img, ok := l.entryToImage(dir, entry); ok {
			images = append(images, img)
		}
	}

	SortImages(images, mode)

	metrics.ScannerItemsReturned.WithLabelValues("list_images").Observe(float64(len(images)))
	return images
}

// entryToImage keeps regular files and symlinks to regular files.
func (l *Lister) entryToImage(dir string, entry os.DirEntry) (ImageEntry, bool) {
	img := ImageEntry{Name: entry.Name()}
	mode := entry.Type()

	switch {
	case mode.IsRegular():
		info, err := l.entryInfo(entry)
		if err != nil {
			logging.Debug("No timestamp for %s: %v", filepath.Join(dir, entry.Name()), err)
			metrics.ScannerTimestampFallbacks.Inc()
			return img, true
		}
		img.ModTime = info.ModTime()
		img.HasModTime = true
		img.Size = info.Size()
		return img, true

	case mode&fs.ModeSymlink != 0:
		info, err := filesystem.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			return ImageEntry{}, false
		}
		img.ModTime = info.ModTime()
		img.HasModTime = true
		img.Size = info.Size()
		return img, true
	}

	return ImageEntry{}, false
}

// ListSubdirs returns the non-hidden directories directly inside dir, sorted
// case-insensitively. Symlinks to directories are included.
func (l *Lister) ListSubdirs(dir string) []SubdirEntry {
	start := time.Now()
	status := "success"
	defer func() {
		metrics.ScannerOperationsTotal.WithLabelValues("list_subdirs", status).Inc()
		metrics.ScannerOperationDuration.WithLabelValues("list_subdirs").Observe(time.Since(start).Seconds())
	}()

	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		status = "error"
		logging.Debug("Listing subdirectories of %s failed: %v", dir, err)
		return []SubdirEntry{}
	}

	subdirs := []SubdirEntry{}
	for _, entry := range entries {
		if mediatypes.IsHidden(entry.Name()) {
			continue
		}

		full := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()
		if !isDir && entry.Type()&fs.ModeSymlink != 0 {
			if info, err := filesystem.Stat(full); err == nil {
				isDir = info.IsDir()
			}
		}
		if !isDir {
			continue
		}

		subdirs = append(subdirs, SubdirEntry{
			Name: entry.Name(),
			Path: l.resolver.Rel(full),
		})
	}

	sortSubdirs(subdirs)

	metrics.ScannerItemsReturned.WithLabelValues("list_subdirs").Observe(float64(len(subdirs)))
	return subdirs
}
