package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imgserve_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imgserve_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "imgserve_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Concurrency limiter metrics
var (
	LimiterSlotsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "imgserve_limiter_slots_in_use",
			Help: "Number of request slots currently held",
		},
	)

	LimiterWaiting = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "imgserve_limiter_waiting_requests",
			Help: "Number of requests waiting for a free slot",
		},
	)

	LimiterAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "imgserve_limiter_abandoned_total",
			Help: "Requests whose client went away while waiting for a slot",
		},
	)
)

// Gallery metrics
var (
	GalleryPagesRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imgserve_gallery_pages_total",
			Help: "Gallery pages served by outcome",
		},
		[]string{"mode", "status"}, // mode: tree|flat
	)

	GalleryRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "imgserve_gallery_render_duration_seconds",
			Help:    "Time spent executing the gallery template",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	ImagesServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imgserve_images_served_total",
			Help: "Image requests by outcome",
		},
		[]string{"status"}, // success, forbidden, not_found, error
	)

	ImageBytesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "imgserve_image_bytes_served_total",
			Help: "Size of image files handed to clients",
		},
	)

	ConfinementRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imgserve_confinement_rejections_total",
			Help: "Requests rejected because the path resolved outside the root",
		},
		[]string{"route"}, // gallery, image
	)

	RootAccessible = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "imgserve_root_accessible",
			Help: "Whether the gallery root directory could be read at the last check (1 = yes)",
		},
	)
)

// Scanner metrics
var (
	ScannerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imgserve_scanner_operations_total",
			Help: "Directory scans by operation and outcome",
		},
		[]string{"operation", "status"}, // operation: list_images, list_subdirs
	)

	ScannerOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imgserve_scanner_operation_duration_seconds",
			Help:    "Duration of directory scans",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	ScannerItemsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imgserve_scanner_items_returned",
			Help:    "Number of entries returned per scan",
			Buckets: []float64{0, 1, 10, 50, 100, 300, 1000, 2000, 5000, 10000},
		},
		[]string{"operation"},
	)

	ScannerTimestampFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "imgserve_scanner_timestamp_fallbacks_total",
			Help: "Images listed without a timestamp because it could not be read",
		},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imgserve_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imgserve_filesystem_operation_errors_total",
			Help: "Filesystem operations that failed, excluding missing paths",
		},
		[]string{"operation"},
	)
)

// Application info
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "imgserve_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
