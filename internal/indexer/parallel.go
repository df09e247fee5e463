package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"imgserve/internal/filesystem"
	"imgserve/internal/logging"
	"imgserve/internal/mediatypes"
	"imgserve/internal/workers"
)

// DefaultProgressInterval is how many indexed images pass between progress reports.
const DefaultProgressInterval = 1000

// WalkerConfig configures the parallel directory walker
type WalkerConfig struct {
	// NumWorkers is the number of parallel workers (0 = auto based on CPU)
	NumWorkers int
	// ChannelBuffer is the size of the work channel buffer
	ChannelBuffer int
	// SkipHidden skips files and directories starting with "."
	SkipHidden bool
	// Dimensions decodes image headers to record width and height.
	Dimensions bool
	// ProgressInterval is the number of images between Progress calls.
	ProgressInterval int
	// Progress is called with the running total of indexed images. When nil
	// the total is logged instead.
	Progress func(indexed int64)
}

// DefaultWalkerConfig returns sensible defaults based on available resources
func DefaultWalkerConfig() WalkerConfig {
	return WalkerConfig{
		NumWorkers:       workers.ForIO(16),
		ChannelBuffer:    1000,
		ProgressInterval: DefaultProgressInterval,
	}
}

// fileJob represents a file to be processed
type fileJob struct {
	path string
}

// fileResult represents a processed file
type fileResult struct {
	record *Record
	err    error
}

// Walker walks a directory tree in parallel and collects gallery images.
// A Walker is used for a single Walk.
type Walker struct {
	config WalkerConfig
	root   string

	// Channels
	jobs    chan fileJob
	results chan fileResult

	wg sync.WaitGroup

	// Statistics
	filesIndexed atomic.Int64
	errorsCount  atomic.Int64
}

// NewWalker creates a walker for the tree at root.
func NewWalker(root string, config WalkerConfig) *Walker {
	if config.NumWorkers < 1 {
		config.NumWorkers = workers.ForIO(16)
	}
	if config.ChannelBuffer < 1 {
		config.ChannelBuffer = 1
	}
	if config.ProgressInterval < 1 {
		config.ProgressInterval = DefaultProgressInterval
	}

	return &Walker{
		config:  config,
		root:    root,
		jobs:    make(chan fileJob, config.ChannelBuffer),
		results: make(chan fileResult, config.ChannelBuffer),
	}
}

// Walk indexes the tree and returns the records sorted earliest first.
// It fails only when the root itself is unusable or ctx is cancelled; in the
// latter case the records gathered so far are returned with ctx.Err().
func (w *Walker) Walk(ctx context.Context) ([]Record, error) {
	root, err := filepath.Abs(w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", w.root, err)
	}
	info, err := filesystem.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot index %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot index %q: not a directory", root)
	}
	w.root = root

	logging.Info("Indexing %s with %d workers", root, w.config.NumWorkers)
	startTime := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start workers
	for i := 0; i < w.config.NumWorkers; i++ {
		w.wg.Add(1)
		go w.worker(ctx, i)
	}

	// Start result collector
	var records []Record
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for result := range w.results {
			if result.err != nil {
				w.errorsCount.Add(1)
				logging.Warn("Could not access %v (skipping)", result.err)
				continue
			}
			if result.record == nil {
				continue
			}
			records = append(records, *result.record)
			if n := w.filesIndexed.Add(1); n%int64(w.config.ProgressInterval) == 0 {
				w.reportProgress(n)
			}
		}
	}()

	// Walk directory tree and send jobs
	w.walkAndEnqueue(ctx)

	// Close jobs channel to signal workers to stop
	close(w.jobs)
	w.wg.Wait()
	close(w.results)
	<-collectorDone

	SortRecords(records)

	logging.Info("Index complete: %d images in %v (errors: %d)",
		len(records), time.Since(startTime), w.errorsCount.Load())

	if err := ctx.Err(); err != nil {
		return records, err
	}
	return records, nil
}

func (w *Walker) reportProgress(n int64) {
	if w.config.Progress != nil {
		w.config.Progress(n)
		return
	}
	logging.Info("Indexed %d images so far...", n)
}

// walkAndEnqueue walks the directory tree and sends candidate files to workers
func (w *Walker) walkAndEnqueue(ctx context.Context) {
	_ = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}

		if err != nil {
			w.errorsCount.Add(1)
			logging.Warn("Error accessing path %s: %v", path, err)
			return nil // Continue walking
		}

		if path == w.root {
			return nil
		}

		// Skip hidden files and directories
		if w.config.SkipHidden && mediatypes.IsHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !mediatypes.IsGalleryImage(d.Name()) {
			return nil
		}

		select {
		case w.jobs <- fileJob{path: path}:
		case <-ctx.Done():
			return fs.SkipAll
		}
		return nil
	})
}

// worker processes files from the jobs channel
func (w *Walker) worker(ctx context.Context, id int) {
	defer w.wg.Done()

	logging.Debug("Worker %d started", id)

	for job := range w.jobs {
		result := w.processFile(job)

		select {
		case w.results <- result:
		case <-ctx.Done():
			// Drain so the walker never blocks on a full jobs channel.
			for range w.jobs {
			}
			return
		}
	}

	logging.Debug("Worker %d finished", id)
}

// processFile stats a single candidate. Symlinks are followed, so a link to
// an image is indexed with the target's timestamp under the link's path.
func (w *Walker) processFile(job fileJob) fileResult {
	info, err := filesystem.Stat(job.path)
	if err != nil {
		return fileResult{err: fmt.Errorf("'%s': %w", job.path, err)}
	}
	if !info.Mode().IsRegular() {
		return fileResult{}
	}

	record := &Record{
		Path:    job.path,
		ModTime: info.ModTime(),
	}

	if w.config.Dimensions {
		width, height, err := readDimensions(job.path)
		if err != nil {
			logging.Debug("No dimensions for %s: %v", job.path, err)
		} else {
			record.Width, record.Height = width, height
		}
	}

	return fileResult{record: record}
}

// Stats returns the number of indexed images and skipped errors.
func (w *Walker) Stats() (indexed, errors int64) {
	return w.filesIndexed.Load(), w.errorsCount.Load()
}
