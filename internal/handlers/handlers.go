package handlers

import (
	"fmt"
	"io"
	"time"

	"imgserve/internal/confine"
	"imgserve/internal/gallery"
	"imgserve/internal/startup"
)

// Renderer writes a gallery page. Implementations must write nothing when
// they return an error, so the handler can still send an error status.
type Renderer interface {
	Gallery(w io.Writer, v *gallery.View) error
}

// Handlers serves the gallery, images and health endpoints. All fields are
// set at construction and never modified, so one value serves every request.
type Handlers struct {
	resolver     *confine.Resolver
	lister       *gallery.Lister
	renderer     Renderer
	captions     gallery.CaptionFormatter
	sortDefaults gallery.SortDefaults
	pageSize     int
	windowSize   int
	startTime    time.Time
}

// New creates the handlers for the root held by resolver.
func New(config *startup.Config, resolver *confine.Resolver, renderer Renderer) (*Handlers, error) {
	captions, err := gallery.NewCaptionFormatter(config.Locale, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to set up captions: %w", err)
	}

	return &Handlers{
		resolver:     resolver,
		lister:       gallery.NewLister(resolver),
		renderer:     renderer,
		captions:     captions,
		sortDefaults: config.SortDefaults(),
		pageSize:     config.PageSize,
		windowSize:   config.WindowSize,
		startTime:    time.Now(),
	}, nil
}
