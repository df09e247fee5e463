package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers every gallery route. Path cleaning is disabled so that
// traversal sequences reach the resolver and are answered with 403 instead of
// being redirected.
func (h *Handlers) NewRouter(flat bool) *mux.Router {
	r := mux.NewRouter().SkipClean(true)

	// Health check and version routes
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	r.HandleFunc("/images/{path:.*}", h.ServeImage).Methods("GET", "HEAD").Name("image")

	if flat {
		r.HandleFunc("/", h.FlatGallery).Methods("GET", "HEAD").Name("gallery")
	} else {
		r.HandleFunc("/", h.Gallery).Methods("GET", "HEAD").Name("gallery")
	}

	return r
}

// MetricsHandler returns the Prometheus metrics handler
func (h *Handlers) MetricsHandler() http.Handler {
	return promhttp.Handler()
}
