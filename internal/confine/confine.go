package confine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"imgserve/internal/filesystem"
)

var (
	// ErrOutsideRoot is returned when a requested path resolves outside the root.
	ErrOutsideRoot = errors.New("path outside allowed root")
	// ErrNotFound is returned when a confined path does not exist or is not
	// of the expected kind.
	ErrNotFound = errors.New("path not found")
)

// Options tunes a Resolver.
type Options struct {
	// RejectSymlinkEscape canonicalizes resolved paths with filepath.EvalSymlinks
	// and re-checks them against the canonical root. Links that lead out of
	// the root are then rejected.
	RejectSymlinkEscape bool
}

// Resolver maps untrusted relative paths onto locations inside a fixed root.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	root          string
	canonicalRoot string
	opts          Options
}

// New creates a Resolver for root. The root is made absolute and cleaned.
func New(root string, opts Options) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory is required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	r := &Resolver{
		root:          abs,
		canonicalRoot: abs,
		opts:          opts,
	}

	if opts.RejectSymlinkEscape {
		canonical, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to canonicalize root %q: %w", abs, err)
		}
		r.canonicalRoot = canonical
	}

	return r, nil
}

// Root returns the absolute root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve joins requested onto the root and normalizes the result without
// touching the filesystem. An absolute request replaces the root, so resolving
// an already-resolved path returns it unchanged. The result is accepted only
// when it equals the root or lies below it.
func (r *Resolver) Resolve(requested string) (string, error) {
	if strings.ContainsRune(requested, 0) {
		return "", fmt.Errorf("%w: invalid character in %q", ErrOutsideRoot, requested)
	}

	var candidate string
	if filepath.IsAbs(requested) {
		candidate = filepath.Clean(requested)
	} else {
		candidate = filepath.Join(r.root, requested)
	}

	if !within(r.root, candidate) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, requested)
	}

	if r.opts.RejectSymlinkEscape {
		canonical, err := filepath.EvalSymlinks(candidate)
		if err == nil && !within(r.canonicalRoot, canonical) {
			return "", fmt.Errorf("%w: %q links outside root", ErrOutsideRoot, requested)
		}
		// A missing path cannot escape; the caller's existence check reports it.
	}

	return candidate, nil
}

// Dir resolves requested and requires the result to be an existing directory.
func (r *Resolver) Dir(requested string) (string, error) {
	path, err := r.Resolve(requested)
	if err != nil {
		return "", err
	}

	info, err := filesystem.Stat(path)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: directory %q", ErrNotFound, requested)
	}
	return path, nil
}

// File resolves requested and requires the result to be an existing regular file.
func (r *Resolver) File(requested string) (string, error) {
	path, err := r.Resolve(requested)
	if err != nil {
		return "", err
	}

	info, err := filesystem.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: file %q", ErrNotFound, requested)
	}
	return path, nil
}

// Rel returns the root-relative form of a resolved path using forward
// slashes. The root itself is "".
func (r *Resolver) Rel(resolved string) string {
	rel, err := filepath.Rel(r.root, resolved)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// within reports whether path equals root or lies below it.
func within(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
