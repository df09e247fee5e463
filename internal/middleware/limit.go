package middleware

import (
	"net/http"
	"strings"

	"imgserve/internal/logging"
	"imgserve/internal/metrics"
)

// LimitConfig holds configuration for the concurrency limiter
type LimitConfig struct {
	// MaxConcurrent is the number of requests handled at once.
	MaxConcurrent int
	// SkipPaths bypass the limiter so probes are answered under load.
	SkipPaths []string
}

// DefaultLimitConfig returns a limiter configuration for n concurrent requests
func DefaultLimitConfig(n int) LimitConfig {
	return LimitConfig{
		MaxConcurrent: n,
		SkipPaths:     []string{"/healthz", "/livez", "/readyz"},
	}
}

// Limit returns a middleware that bounds the number of requests in flight.
// Requests over the limit wait for a free slot. A waiting request whose
// client goes away is answered with 503 and never reaches the handler.
func Limit(config LimitConfig) func(http.Handler) http.Handler {
	n := config.MaxConcurrent
	if n < 1 {
		n = 1
	}
	slots := make(chan struct{}, n)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range config.SkipPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if !acquire(slots, r) {
				logging.Debug("Request for %s abandoned while waiting for a slot", r.URL.Path)
				metrics.LimiterAbandoned.Inc()
				http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
				return
			}
			metrics.LimiterSlotsInUse.Inc()
			defer func() {
				metrics.LimiterSlotsInUse.Dec()
				<-slots
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// acquire takes a slot, waiting until one frees up or the request ends.
func acquire(slots chan struct{}, r *http.Request) bool {
	select {
	case slots <- struct{}{}:
		return true
	default:
	}

	metrics.LimiterWaiting.Inc()
	defer metrics.LimiterWaiting.Dec()

	select {
	case slots <- struct{}{}:
		return true
	case <-r.Context().Done():
		return false
	}
}
