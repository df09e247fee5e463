package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imgserve/internal/linkfarm"

	"github.com/spf13/pflag"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "defaults",
			args: []string{"/photos"},
			want: options{source: "/photos", dest: linkfarm.DefaultDest, limit: linkfarm.DefaultLimit},
		},
		{
			name: "flags",
			args: []string{"-d", "/srv/flat", "--limit", "10", "-v", "/photos"},
			want: options{source: "/photos", dest: "/srv/flat", limit: 10, verbose: true},
		},
		{name: "no source", args: nil, wantErr: true},
		{name: "two sources", args: []string{"a", "b"}, wantErr: true},
		{name: "zero limit", args: []string{"--limit=0", "a"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args, &bytes.Buffer{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseArgsHelp(t *testing.T) {
	_, err := parseArgs([]string{"-h"}, &bytes.Buffer{})
	if !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("Expected ErrHelp, got %v", err)
	}
}

func TestRun(t *testing.T) {
	src := t.TempDir()
	for i, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		dir := filepath.Join(src, strings.Repeat("d/", i))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	dest := filepath.Join(t.TempDir(), "flat")

	var stdout bytes.Buffer
	if err := run(context.Background(), options{source: src, dest: dest, limit: 2}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"subdirectories: 3", "Successfully created 2 symlinks"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Fewer than") {
		t.Errorf("Did not expect the shortfall note:\n%s", out)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 links, got %d", len(entries))
	}
}

func TestRunShortfall(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), options{source: t.TempDir(), dest: filepath.Join(t.TempDir(), "flat"), limit: 5}, &stdout)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "Fewer than 5 images") {
		t.Errorf("Expected shortfall note, got:\n%s", stdout.String())
	}
}
