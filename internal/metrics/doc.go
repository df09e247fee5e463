// Package metrics provides Prometheus instrumentation for imgserve.
//
// All metrics are prefixed with "imgserve_" and registered with the default
// registry through promauto. They are exposed by mounting promhttp.Handler()
// on the metrics listener, which runs on its own port.
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of requests by method, path and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of requests being processed
//
// ## Concurrency Limiter
//
//   - LimiterSlotsInUse: Gauge of held request slots
//   - LimiterWaiting: Gauge of requests queued for a slot
//   - LimiterAbandoned: Counter of requests cancelled while queued
//
// ## Gallery
//
//   - GalleryPagesRendered: Counter by mode (tree/flat) and status
//   - GalleryRenderDuration: Histogram of template execution time
//   - ImagesServedTotal: Counter of image requests by status
//   - ImageBytesServed: Counter of image bytes handed to clients
//   - ConfinementRejections: Counter of paths rejected for leaving the root
//   - RootAccessible: Gauge set by the [Collector]
//
// ## Scanner
//
//   - ScannerOperationsTotal, ScannerOperationDuration, ScannerItemsReturned
//   - ScannerTimestampFallbacks: images listed with "Date N/A"
//
// ## Filesystem
//
// Recorded through the filesystem.Observer returned by NewFilesystemObserver:
//   - FilesystemOperationDuration: Histogram by operation
//   - FilesystemOperationErrors: Counter by operation (missing paths excluded)
//
// # Prometheus Queries
//
// Rejected traversal attempts:
//
//	sum(rate(imgserve_confinement_rejections_total[5m])) by (route)
//
// P95 directory scan time:
//
//	histogram_quantile(0.95, sum(rate(imgserve_scanner_operation_duration_seconds_bucket[5m])) by (le, operation))
//
// Requests queued behind the limiter:
//
//	imgserve_limiter_waiting_requests
package metrics
