package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"imgserve/internal/database"
	"imgserve/internal/indexer"
	"imgserve/internal/logging"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	formatJSON   = "json"
	formatSQLite = "sqlite"
)

// options holds the parsed command line.
type options struct {
	root       string
	output     string
	format     string
	workers    int
	dimensions bool
	skipHidden bool
	verbose    bool
}

func main() {
	// Create a context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(ctx, opts, os.Stdout, isTerminal(os.Stderr)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("imgindex", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.format, "format", "f", formatJSON, "output format: json or sqlite")
	fs.IntVarP(&opts.workers, "workers", "w", 0, "parallel stat workers (0 = automatic)")
	fs.BoolVar(&opts.dimensions, "dimensions", false, "decode image headers to record width and height")
	fs.BoolVar(&opts.skipHidden, "skip-hidden", false, "skip files and directories starting with '.'")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: imgindex [flags] <root_directory_to_search> <output_file>")
		fmt.Fprintln(stderr, "Example: imgindex /path/to/your/photos image_index.json")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return opts, fmt.Errorf("expected 2 arguments, got %d", fs.NArg())
	}
	opts.root, opts.output = fs.Arg(0), fs.Arg(1)

	switch opts.format {
	case formatJSON, formatSQLite:
	default:
		return opts, fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatJSON, formatSQLite)
	}
	if opts.workers < 0 {
		return opts, fmt.Errorf("workers must not be negative")
	}

	return opts, nil
}

func run(ctx context.Context, opts options, stdout io.Writer, interactive bool) error {
	if opts.verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	fmt.Fprintln(stdout, "Starting image index generation...")
	fmt.Fprintf(stdout, "Searching for images recursively in: '%s'\n", opts.root)
	fmt.Fprintf(stdout, "Output will be saved to: '%s'\n", opts.output)

	config := indexer.DefaultWalkerConfig()
	config.NumWorkers = opts.workers
	config.Dimensions = opts.dimensions
	config.SkipHidden = opts.skipHidden
	config.Progress = func(n int64) {
		if interactive {
			fmt.Fprintf(stdout, "\rIndexed %s images so far...", humanize.Comma(n))
			return
		}
		fmt.Fprintf(stdout, "Indexed %s images so far...\n", humanize.Comma(n))
	}

	start := time.Now()
	walker := indexer.NewWalker(opts.root, config)
	records, err := walker.Walk(ctx)
	if interactive {
		fmt.Fprintln(stdout)
	}
	if err != nil {
		return err
	}

	switch opts.format {
	case formatSQLite:
		err = writeSQLite(ctx, opts.output, records)
	default:
		err = writeJSON(opts.output, records)
	}
	if err != nil {
		return fmt.Errorf("could not write index to '%s': %w", opts.output, err)
	}

	_, skipped := walker.Stats()
	fmt.Fprintf(stdout, "\nProcess finished. Successfully indexed %s images in %s.\n",
		humanize.Comma(int64(len(records))), time.Since(start).Round(time.Millisecond))
	if skipped > 0 {
		fmt.Fprintf(stdout, "Skipped %s files that could not be read.\n", humanize.Comma(skipped))
	}
	fmt.Fprintf(stdout, "Index saved to '%s'.\n", opts.output)
	return nil
}

// writeJSON writes records as an indented JSON array, earliest first.
func writeJSON(path string, records []indexer.Record) error {
	if records == nil {
		records = []indexer.Record{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeSQLite(ctx context.Context, path string, records []indexer.Record) error {
	db, err := database.New(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn("failed to close database: %v", err)
		}
	}()

	images := make([]database.Image, len(records))
	for i, r := range records {
		images[i] = database.Image{Path: r.Path, ModTime: r.ModTime, Width: r.Width, Height: r.Height}
	}
	return db.ReplaceImages(ctx, images)
}

// isTerminal reports whether progress can be redrawn in place on f.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
