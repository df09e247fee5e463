package handlers

import (
	"errors"
	"io/fs"
	"net/http"

	"imgserve/internal/confine"
	"imgserve/internal/filesystem"
	"imgserve/internal/logging"
	"imgserve/internal/mediatypes"
	"imgserve/internal/metrics"

	"github.com/gorilla/mux"
)

// ServeImage serves GET /images/{path}: the exact bytes of a file below the
// root. Range and conditional requests are handled by http.ServeContent.
func (h *Handlers) ServeImage(w http.ResponseWriter, r *http.Request) {
	requested := mux.Vars(r)["path"]

	path, err := h.resolver.File(requested)
	if err != nil {
		switch {
		case errors.Is(err, confine.ErrOutsideRoot):
			logging.Warn("Rejected image request from %s: %v", r.RemoteAddr, err)
			metrics.ConfinementRejections.WithLabelValues("image").Inc()
			metrics.ImagesServedTotal.WithLabelValues("forbidden").Inc()
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			logging.Debug("Image not found: %v", err)
			metrics.ImagesServedTotal.WithLabelValues("not_found").Inc()
			http.Error(w, "File not found", http.StatusNotFound)
		}
		return
	}

	// The file may disappear between the check above and the open.
	f, err := filesystem.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.ImagesServedTotal.WithLabelValues("not_found").Inc()
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		logging.Error("Failed to open %s: %v", path, err)
		metrics.ImagesServedTotal.WithLabelValues("error").Inc()
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logging.Error("Failed to stat %s: %v", path, err)
		metrics.ImagesServedTotal.WithLabelValues("error").Inc()
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}
	if !info.Mode().IsRegular() {
		metrics.ImagesServedTotal.WithLabelValues("not_found").Inc()
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	// Other files get a sniffed type from ServeContent.
	if mediatypes.IsImageName(info.Name()) {
		w.Header().Set("Content-Type", mediatypes.GetMimeType(mediatypes.Ext(info.Name())))
	}

	// Errors while copying the body happen after the headers are sent; the
	// status can no longer change, so ServeContent only aborts the transfer.
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)

	metrics.ImagesServedTotal.WithLabelValues("success").Inc()
	if r.Method == http.MethodGet {
		metrics.ImageBytesServed.Add(float64(info.Size()))
	}
}
