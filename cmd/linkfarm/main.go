package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"imgserve/internal/linkfarm"
	"imgserve/internal/logging"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// options holds the parsed command line.
type options struct {
	source  string
	dest    string
	limit   int
	verbose bool
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

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("linkfarm", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.dest, "dest", "d", linkfarm.DefaultDest, "directory that receives the symlinks")
	fs.IntVarP(&opts.limit, "limit", "n", linkfarm.DefaultLimit, "maximum number of symlinks to create")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log every symlink created")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: linkfarm [flags] <root_directory_to_search>")
		fmt.Fprintln(stderr, "Example: linkfarm /path/to/your/photos")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, fmt.Errorf("expected 1 argument, got %d", fs.NArg())
	}
	opts.source = fs.Arg(0)

	if opts.limit < 1 {
		return opts, fmt.Errorf("limit must be at least 1")
	}
	return opts, nil
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	if opts.verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	fmt.Fprintln(stdout, "Starting image symlink creation process...")
	fmt.Fprintf(stdout, "Searching for images recursively in: '%s'\n", opts.source)
	fmt.Fprintf(stdout, "Creating symlinks in: '%s'\n", opts.dest)
	fmt.Fprintf(stdout, "Limiting to the first %s images found.\n", humanize.Comma(int64(opts.limit)))

	res, err := linkfarm.Build(ctx, opts.source, linkfarm.Options{Dest: opts.dest, Limit: opts.limit})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Total images found in '%s' and its subdirectories: %s\n", opts.source, humanize.Comma(int64(res.Found)))
	fmt.Fprintf(stdout, "\nProcess finished. Successfully created %s symlinks.\n", humanize.Comma(int64(res.Created)))
	if res.Skipped > 0 {
		fmt.Fprintf(stdout, "Skipped %s images whose name already exists.\n", humanize.Comma(int64(res.Skipped)))
	}
	if res.Failed > 0 {
		fmt.Fprintf(stdout, "Failed to link %s images.\n", humanize.Comma(int64(res.Failed)))
	}
	if !res.LimitReached(opts.limit) {
		fmt.Fprintf(stdout, "Fewer than %s images were found or could be linked.\n", humanize.Comma(int64(opts.limit)))
	}
	return nil
}
