package filesystem

import "sync/atomic"

// Observer records filesystem operation metrics. The implementation lives in
// the metrics package to break the import cycle between filesystem and metrics.
type Observer interface {
	// ObserveOperation records duration and error status for a filesystem operation.
	// operation is one of "readdir", "stat", "lstat", "open".
	ObserveOperation(operation string, durationSeconds float64, err error)
}

type observerHolder struct {
	o Observer
}

// defaultObserver is the package-level observer set at startup.
// If unset, metric recording is silently skipped (safe for tests).
var defaultObserver atomic.Pointer[observerHolder]

// SetObserver sets the package-level metrics observer.
// Call this once at startup after creating the observer implementation.
func SetObserver(o Observer) {
	defaultObserver.Store(&observerHolder{o: o})
}

// observe is a nil-safe helper for the package-level observer.
func observe() Observer {
	if h := defaultObserver.Load(); h != nil {
		return h.o
	}
	return nil
}
