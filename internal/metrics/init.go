package metrics

import "imgserve/internal/filesystem"

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Filesystem operation metrics ---
	for _, op := range []string{filesystem.OpReadDir, filesystem.OpStat, filesystem.OpLstat, filesystem.OpOpen} {
		FilesystemOperationDuration.WithLabelValues(op)
		FilesystemOperationErrors.WithLabelValues(op)
	}

	// --- Scanner operations ---
	for _, op := range []string{"list_images", "list_subdirs"} {
		ScannerOperationsTotal.WithLabelValues(op, "success")
		ScannerOperationsTotal.WithLabelValues(op, "error")
		ScannerOperationDuration.WithLabelValues(op)
		ScannerItemsReturned.WithLabelValues(op)
	}

	// --- Gallery pages ---
	for _, mode := range []string{"tree", "flat"} {
		for _, status := range []string{"success", "forbidden", "not_found", "error"} {
			GalleryPagesRendered.WithLabelValues(mode, status)
		}
	}

	// --- Image transfers ---
	for _, status := range []string{"success", "forbidden", "not_found", "error"} {
		ImagesServedTotal.WithLabelValues(status)
	}

	for _, route := range []string{"gallery", "image"} {
		ConfinementRejections.WithLabelValues(route)
	}
}
