package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type recordedOp struct {
	operation string
	failed    bool
}

type fakeObserver struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (f *fakeObserver) ObserveOperation(operation string, durationSeconds float64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, recordedOp{operation: operation, failed: err != nil})
}

func (f *fakeObserver) snapshot() []recordedOp {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedOp(nil), f.ops...)
}

func TestWrappersReportToObserver(t *testing.T) {
	obs := &fakeObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	dir := t.TempDir()
	file := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(file, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("ReadDir() = %d entries, %v", len(entries), err)
	}
	if _, err := EntryInfo(entries[0]); err != nil {
		t.Fatalf("EntryInfo() error = %v", err)
	}
	if _, err := Stat(file); err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	f, err := Open(file)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	f.Close()

	ops := obs.snapshot()
	want := []string{OpReadDir, OpLstat, OpStat, OpOpen}
	if len(ops) != len(want) {
		t.Fatalf("recorded %d ops, want %d: %+v", len(ops), len(want), ops)
	}
	for i, op := range want {
		if ops[i].operation != op {
			t.Errorf("op[%d] = %q, want %q", i, ops[i].operation, op)
		}
		if ops[i].failed {
			t.Errorf("op[%d] %q recorded as failed", i, op)
		}
	}
}

func TestNotExistIsNotAFailure(t *testing.T) {
	obs := &fakeObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	_, err := Stat(filepath.Join(t.TempDir(), "missing.jpg"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Stat() error = %v, want not-exist", err)
	}

	ops := obs.snapshot()
	if len(ops) != 1 || ops[0].failed {
		t.Errorf("recorded %+v, want one successful stat", ops)
	}
}

func TestFailuresAreRecorded(t *testing.T) {
	obs := &fakeObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	// Reading a regular file as a directory fails with ENOTDIR.
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadDir(file); err == nil {
		t.Fatal("ReadDir on a file should fail")
	}

	ops := obs.snapshot()
	if len(ops) != 1 || !ops[0].failed {
		t.Errorf("recorded %+v, want one failed readdir", ops)
	}
}

func TestNoObserverIsSafe(t *testing.T) {
	SetObserver(nil)
	if _, err := Stat(t.TempDir()); err != nil {
		t.Errorf("Stat() error = %v", err)
	}
}
