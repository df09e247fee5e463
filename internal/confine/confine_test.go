package confine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()

	root := t.TempDir()
	res, err := New(root, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return res, res.Root()
}

func TestNewRequiresRoot(t *testing.T) {
	if _, err := New("", Options{}); err == nil {
		t.Error("Expected error for empty root")
	}
}

func TestNewMakesRootAbsolute(t *testing.T) {
	res, err := New(".", Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !filepath.IsAbs(res.Root()) {
		t.Errorf("Root() = %q, want absolute path", res.Root())
	}
}

func TestResolveConfined(t *testing.T) {
	t.Parallel()

	res, root := newTestResolver(t)

	tests := []struct {
		name      string
		requested string
		want      string
	}{
		{name: "Empty is root", requested: "", want: root},
		{name: "Dot is root", requested: ".", want: root},
		{name: "Direct child", requested: "photos", want: filepath.Join(root, "photos")},
		{name: "Nested file", requested: "photos/2024/a.jpg", want: filepath.Join(root, "photos", "2024", "a.jpg")},
		{name: "Redundant separators", requested: "photos//2024///", want: filepath.Join(root, "photos", "2024")},
		{name: "Dot segments", requested: "./photos/./a.jpg", want: filepath.Join(root, "photos", "a.jpg")},
		{name: "Dotdot that stays inside", requested: "photos/../videos", want: filepath.Join(root, "videos")},
		{name: "Dotdot back to root", requested: "photos/..", want: root},
		{name: "Name made of dots", requested: "..../x", want: filepath.Join(root, "....", "x")},
		{name: "Name starting with dotdot", requested: "..hidden", want: filepath.Join(root, "..hidden")},
		{name: "Absolute path inside root", requested: filepath.Join(root, "photos"), want: filepath.Join(root, "photos")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := res.Resolve(tt.requested)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.requested, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	t.Parallel()

	res, root := newTestResolver(t)

	tests := []struct {
		name      string
		requested string
	}{
		{name: "Parent", requested: ".."},
		{name: "Parent with trailing slash", requested: "../"},
		{name: "Classic traversal", requested: "../../etc/passwd"},
		{name: "Traversal after descent", requested: "photos/../../etc/passwd"},
		{name: "Deep traversal", requested: strings.Repeat("../", 40) + "etc/passwd"},
		{name: "Traversal with dot segments", requested: "./.././../etc"},
		{name: "Absolute override", requested: "/etc/passwd"},
		{name: "Absolute root of filesystem", requested: "/"},
		{name: "Sibling sharing prefix", requested: root + "-private/secret.jpg"},
		{name: "Relative sibling sharing prefix", requested: "../" + filepath.Base(root) + "-private"},
		{name: "Parent of root as absolute", requested: filepath.Dir(root)},
		{name: "NUL byte", requested: "photo.jpg\x00.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := res.Resolve(tt.requested)
			if err == nil {
				t.Fatalf("Resolve(%q) = %q, want error", tt.requested, got)
			}
			if !errors.Is(err, ErrOutsideRoot) {
				t.Errorf("Resolve(%q) error = %v, want ErrOutsideRoot", tt.requested, err)
			}
		})
	}
}

func TestResolveNeverLeavesRoot(t *testing.T) {
	t.Parallel()

	res, root := newTestResolver(t)

	segments := []string{"..", ".", "a", "b", "", "/", "..a", "a..", root}
	// Every combination of three segments.
	for _, s1 := range segments {
		for _, s2 := range segments {
			for _, s3 := range segments {
				requested := s1 + "/" + s2 + "/" + s3
				got, err := res.Resolve(requested)
				if err != nil {
					continue
				}
				if got != root && !strings.HasPrefix(got, root+string(filepath.Separator)) {
					t.Errorf("Resolve(%q) = %q escapes root %q", requested, got, root)
				}
			}
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	res, _ := newTestResolver(t)

	for _, requested := range []string{"", "a", "a/b/c.jpg", "a/../b", "./x//y/"} {
		first, err := res.Resolve(requested)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", requested, err)
		}
		second, err := res.Resolve(first)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", first, err)
		}
		if first != second {
			t.Errorf("Resolve not idempotent for %q: %q then %q", requested, first, second)
		}
	}
}

func TestDirAndFile(t *testing.T) {
	t.Parallel()

	res, root := newTestResolver(t)

	if err := os.MkdirAll(filepath.Join(root, "album"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "album", "a.jpg"), []byte("jpg"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := res.Dir("album"); err != nil {
		t.Errorf("Dir(album) error = %v", err)
	}
	if _, err := res.Dir(""); err != nil {
		t.Errorf("Dir(root) error = %v", err)
	}
	if _, err := res.Dir("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Dir(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := res.Dir("album/a.jpg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Dir(file) error = %v, want ErrNotFound", err)
	}
	if _, err := res.Dir("../"); !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("Dir(..) error = %v, want ErrOutsideRoot", err)
	}

	if _, err := res.File("album/a.jpg"); err != nil {
		t.Errorf("File(album/a.jpg) error = %v", err)
	}
	if _, err := res.File("album"); !errors.Is(err, ErrNotFound) {
		t.Errorf("File(dir) error = %v, want ErrNotFound", err)
	}
	if _, err := res.File("album/missing.jpg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("File(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := res.File("../../etc/passwd"); !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("File(traversal) error = %v, want ErrOutsideRoot", err)
	}
}

func TestRel(t *testing.T) {
	t.Parallel()

	res, root := newTestResolver(t)

	tests := []struct {
		resolved string
		want     string
	}{
		{resolved: root, want: ""},
		{resolved: filepath.Join(root, "a"), want: "a"},
		{resolved: filepath.Join(root, "a", "b", "c.jpg"), want: "a/b/c.jpg"},
	}

	for _, tt := range tests {
		if got := res.Rel(tt.resolved); got != tt.want {
			t.Errorf("Rel(%q) = %q, want %q", tt.resolved, got, tt.want)
		}
	}
}

func TestSymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "secret.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := t.TempDir()
	if err := os.Symlink(filepath.Join(outside, "secret.jpg"), filepath.Join(root, "link.jpg")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	lenient, err := New(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lenient.File("link.jpg"); err != nil {
		t.Errorf("default resolver should follow links, got %v", err)
	}

	strict, err := New(root, Options{RejectSymlinkEscape: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := strict.File("link.jpg"); !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("strict resolver error = %v, want ErrOutsideRoot", err)
	}
	if _, err := strict.Resolve("missing.jpg"); err != nil {
		t.Errorf("strict resolver should leave missing paths to the existence check, got %v", err)
	}
}
