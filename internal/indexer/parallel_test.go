package indexer

import (
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// writeFile creates root/rel with the given modification time offset in hours.
func writeFile(t *testing.T, root, rel string, hours int) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := baseTime.Add(time.Duration(hours) * time.Hour)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return path
}

func paths(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testConfig() WalkerConfig {
	config := DefaultWalkerConfig()
	config.NumWorkers = 3
	return config
}

func TestWalkFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "a.jpg", 2)
	b := writeFile(t, root, "sub/b.PNG", 1)
	c := writeFile(t, root, "sub/deeper/c.webp", 3)
	e := writeFile(t, root, ".hidden/e.jpg", 0)
	writeFile(t, root, "._a.jpg", -5)
	writeFile(t, root, "notes.txt", -4)
	writeFile(t, root, "sub/raw.heic", -3)

	tests := []struct {
		name       string
		skipHidden bool
		want       []string
	}{
		{"includes hidden directories", false, []string{e, b, a, c}},
		{"skips hidden directories", true, []string{b, a, c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			config.SkipHidden = tt.skipHidden

			records, err := NewWalker(root, config).Walk(context.Background())
			if err != nil {
				t.Fatalf("Walk: %v", err)
			}

			if got := paths(records); !equalStrings(got, tt.want) {
				t.Errorf("Walk() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalkRecordsAbsolutePathsAndTimes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "x.gif", 5)

	// A relative root still yields absolute paths.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	records, err := NewWalker(".", testConfig()).Walk(context.Background())
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if !filepath.IsAbs(records[0].Path) {
		t.Errorf("Expected absolute path, got %s", records[0].Path)
	}
	if want := baseTime.Add(5 * time.Hour); !records[0].ModTime.Equal(want) {
		t.Errorf("ModTime = %v, want %v", records[0].ModTime, want)
	}
}

func TestWalkSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	target := writeFile(t, outside, "target.jpg", 7)

	link := filepath.Join(root, "link.jpg")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(outside, "gone.jpg"), filepath.Join(root, "broken.jpg")); err != nil {
		t.Fatal(err)
	}

	w := NewWalker(root, testConfig())
	records, err := w.Walk(context.Background())
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if got := paths(records); !equalStrings(got, []string{link}) {
		t.Fatalf("Walk() = %v, want only the working link", got)
	}
	if want := baseTime.Add(7 * time.Hour); !records[0].ModTime.Equal(want) {
		t.Errorf("Expected link to carry the target's time, got %v", records[0].ModTime)
	}

	indexed, errs := w.Stats()
	if indexed != 1 || errs != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", indexed, errs)
	}
}

func TestWalkInvalidRoot(t *testing.T) {
	root := t.TempDir()
	file := writeFile(t, root, "a.jpg", 0)

	for name, path := range map[string]string{
		"missing":   filepath.Join(root, "missing"),
		"not a dir": file,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := NewWalker(path, testConfig()).Walk(context.Background()); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestWalkCancelled(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, root, filepath.Join("d", string(rune('a'+i))+".jpg"), i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewWalker(root, testConfig()).Walk(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestWalkProgress(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		writeFile(t, root, string(rune('a'+i))+".png", i)
	}

	var mu sync.Mutex
	var reports []int64

	config := testConfig()
	config.ProgressInterval = 2
	config.Progress = func(n int64) {
		mu.Lock()
		defer mu.Unlock()
		reports = append(reports, n)
	}

	if _, err := NewWalker(root, config).Walk(context.Background()); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if len(reports) != 2 || reports[0] != 2 || reports[1] != 4 {
		t.Errorf("Progress reports = %v, want [2 4]", reports)
	}
}

func TestWalkDimensions(t *testing.T) {
	root := t.TempDir()

	writeImage := func(name string, encode func(io.Writer, image.Image) error, w, h int) string {
		path := filepath.Join(root, name)
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if err := encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
			t.Fatal(err)
		}
		return path
	}

	pngPath := writeImage("a.png", png.Encode, 3, 2)
	bmpPath := writeImage("b.bmp", bmp.Encode, 4, 5)
	junk := writeFile(t, root, "c.jpg", 0)

	config := testConfig()
	config.Dimensions = true

	records, err := NewWalker(root, config).Walk(context.Background())
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := map[string][2]int{pngPath: {3, 2}, bmpPath: {4, 5}, junk: {0, 0}}
	if len(records) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(records))
	}
	for _, r := range records {
		if got := [2]int{r.Width, r.Height}; got != want[r.Path] {
			t.Errorf("%s: dimensions %v, want %v", filepath.Base(r.Path), got, want[r.Path])
		}
	}
}
