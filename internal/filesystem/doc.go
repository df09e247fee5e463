/*
Package filesystem wraps the handful of filesystem calls the gallery makes
(ReadDir, Stat, DirEntry.Info, Open) so that each one is timed and reported to
a metrics Observer.

# Purpose

Every gallery request re-scans its directory and every image request opens a
file, so filesystem latency is the main cost of the server. Recording it per
operation makes slow or failing mounts visible without changing behavior:
each wrapper performs exactly one call and returns its result untouched.
Nothing here retries.

# Usage

	import "imgserve/internal/filesystem"

	entries, err := filesystem.ReadDir(dir)
	info, err := filesystem.Stat(path)
	f, err := filesystem.Open(path)

# Observer

The metrics package provides the Observer implementation; main wires it once
at startup:

	filesystem.SetObserver(metrics.NewFilesystemObserver())

Without an observer (for example in tests) recording is skipped. Not-exist
errors are reported as successful operations because a missing file is a
normal outcome for a request.
*/
package filesystem
