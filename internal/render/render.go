// Package render turns gallery views into HTML using templates embedded in
// the binary.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"imgserve/internal/gallery"
	"imgserve/internal/metrics"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTML renders gallery pages.
type HTML struct {
	templates *template.Template
}

// New parses the embedded templates.
func New() (*HTML, error) {
	templates, err := template.New("").Funcs(makeFuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return &HTML{templates: templates}, nil
}

// Gallery writes the page for v. Nothing is written to w if the template
// fails, so callers can still report an error status.
func (h *HTML) Gallery(w io.Writer, v *gallery.View) error {
	start := time.Now()
	defer func() {
		metrics.GalleryRenderDuration.Observe(time.Since(start).Seconds())
	}()

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "gallery.html", v); err != nil {
		return fmt.Errorf("failed to render gallery: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write gallery: %w", err)
	}
	return nil
}

func makeFuncMap() template.FuncMap {
	return template.FuncMap{
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
		"isoTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(time.RFC3339)
		},
	}
}
