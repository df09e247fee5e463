// Package middleware provides HTTP middleware for the gallery server.
//
// It includes:
//   - Request logging in W3C Extended Log Format, with image transfers and
//     health checks filtered out on request
//   - Prometheus request metrics keyed by route rather than raw path
//   - gzip compression for HTML and JSON responses
//   - A concurrency limiter that bounds the requests handled at once
//
// main wraps the router as Limit(Logger(Metrics(Compression(router)))), so
// queued requests are neither timed nor logged until they get a slot.
package middleware
