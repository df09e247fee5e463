package linkfarm

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"imgserve/internal/logging"
	"imgserve/internal/mediatypes"
)

const (
	// DefaultDest is the directory links are created in.
	DefaultDest = "images"
	// DefaultLimit caps the number of links created.
	DefaultLimit = 2000
)

// Options configures Build.
type Options struct {
	// Dest is the directory that receives the links. It is created if missing.
	Dest string
	// Limit caps the number of links created; values below 1 use DefaultLimit.
	Limit int
}

// Result summarizes a Build.
type Result struct {
	// Found counts every gallery image under the source, linked or not.
	Found int
	// Created counts links made by this run.
	Created int
	// Skipped counts images whose name was already taken in Dest.
	Skipped int
	// Failed counts images that could not be linked.
	Failed int
	// TimesNotCopied counts links whose timestamps could not be set.
	TimesNotCopied int
}

// LimitReached reports whether the run stopped creating links at limit.
func (r Result) LimitReached(limit int) bool {
	return r.Created >= limit
}

// Build walks source and links up to opts.Limit gallery images into
// opts.Dest. Per-file failures are counted and logged, never returned.
func Build(ctx context.Context, source string, opts Options) (Result, error) {
	var res Result

	if opts.Dest == "" {
		opts.Dest = DefaultDest
	}
	if opts.Limit < 1 {
		opts.Limit = DefaultLimit
	}

	src, err := filepath.Abs(source)
	if err != nil {
		return res, fmt.Errorf("failed to resolve %q: %w", source, err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return res, fmt.Errorf("cannot read source %q: %w", source, err)
	}
	if !info.IsDir() {
		return res, fmt.Errorf("source %q is not a directory", source)
	}

	dest, err := filepath.Abs(opts.Dest)
	if err != nil {
		return res, fmt.Errorf("failed to resolve %q: %w", opts.Dest, err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return res, fmt.Errorf("failed to create %q: %w", dest, err)
	}

	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logging.Warn("Error accessing path %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			// Never descend into our own output.
			if path == dest {
				return filepath.SkipDir
			}
			return nil
		}
		if !mediatypes.IsGalleryImage(d.Name()) {
			return nil
		}

		res.Found++
		if res.Created >= opts.Limit {
			return nil
		}

		link(path, filepath.Join(dest, d.Name()), &res)
		return nil
	})

	if walkErr != nil {
		return res, walkErr
	}
	return res, nil
}

// link creates one symlink and records the outcome in res.
func link(target, name string, res *Result) {
	if _, err := os.Lstat(name); err == nil {
		logging.Info("Skipping '%s': '%s' already exists", target, filepath.Base(name))
		res.Skipped++
		return
	} else if !errors.Is(err, fs.ErrNotExist) {
		logging.Warn("Cannot check '%s': %v", name, err)
		res.Failed++
		return
	}

	if err := os.Symlink(target, name); err != nil {
		logging.Warn("Error creating symlink for '%s': %v", target, err)
		res.Failed++
		return
	}
	res.Created++
	logging.Debug("Created symlink '%s' -> '%s'", filepath.Base(name), target)

	if err := copyTimes(target, name); err != nil {
		logging.Debug("Timestamps not copied to '%s': %v", name, err)
		res.TimesNotCopied++
	}
}
