package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"imgserve/internal/confine"
	"imgserve/internal/gallery"
	"imgserve/internal/logging"
	"imgserve/internal/metrics"
	"imgserve/internal/pagination"
)

// Gallery serves GET /?dir=&page=&sort=&order= for the directory tree.
func (h *Handlers) Gallery(w http.ResponseWriter, r *http.Request) {
	h.serveGallery(w, r, false)
}

// FlatGallery serves GET / for a single flat directory such as a symlink
// farm. The dir parameter is ignored and no subdirectories are shown.
func (h *Handlers) FlatGallery(w http.ResponseWriter, r *http.Request) {
	h.serveGallery(w, r, true)
}

func (h *Handlers) serveGallery(w http.ResponseWriter, r *http.Request, flat bool) {
	query := r.URL.Query()

	mode := "tree"
	requested := query.Get("dir")
	if flat {
		mode = "flat"
		requested = ""
	}

	dir, err := h.resolver.Dir(requested)
	if err != nil {
		switch {
		case errors.Is(err, confine.ErrOutsideRoot):
			logging.Warn("Rejected gallery request from %s: %v", r.RemoteAddr, err)
			metrics.ConfinementRejections.WithLabelValues("gallery").Inc()
			metrics.GalleryPagesRendered.WithLabelValues(mode, "forbidden").Inc()
			http.Error(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, confine.ErrNotFound):
			logging.Debug("Gallery directory not found: %v", err)
			metrics.GalleryPagesRendered.WithLabelValues(mode, "not_found").Inc()
			http.Error(w, "Directory not found", http.StatusNotFound)
		default:
			logging.Error("Gallery request for %q failed: %v", requested, err)
			metrics.GalleryPagesRendered.WithLabelValues(mode, "error").Inc()
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	sortMode := gallery.ParseSortMode(query.Get("sort"), query.Get("order"), h.sortDefaults)
	images := h.lister.ListImages(dir, sortMode)
	window := pagination.Paginate(parsePage(query.Get("page")), len(images), h.pageSize, h.windowSize)

	var subdirs []gallery.SubdirEntry
	if !flat {
		subdirs = h.lister.ListSubdirs(dir)
	}

	view := gallery.BuildView(gallery.ViewInput{
		RootLabel:    h.resolver.Root(),
		Dir:          h.resolver.Rel(dir),
		Images:       images,
		Subdirs:      subdirs,
		Window:       window,
		Sort:         sortMode,
		SortDefaults: h.sortDefaults,
		Captions:     h.captions,
		Flat:         flat,
	})

	logging.Debug("Gallery %q: %d images, page %d/%d, sort %s %s",
		view.Dir, len(images), window.Page, window.TotalPages, sortMode.Field, sortMode.Order)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if err := h.renderer.Gallery(w, view); err != nil {
		logging.Error("Failed to render gallery %q: %v", view.Dir, err)
		metrics.GalleryPagesRendered.WithLabelValues(mode, "error").Inc()
		w.Header().Del("Cache-Control")
		http.Error(w, "Failed to render gallery", http.StatusInternalServerError)
		return
	}
	metrics.GalleryPagesRendered.WithLabelValues(mode, "success").Inc()
}

// parsePage returns the requested page number, or 1 when it is not an integer.
// Out-of-range values are clamped later by pagination.Paginate.
func parsePage(s string) int {
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return page
}
