// Command imgserve serves a directory tree of images as a paginated web
// gallery.
//
// Every request is confined to a single root directory fixed at startup.
// Directories are re-scanned on each request, so the gallery always shows
// what is on disk.
//
// # Usage
//
//	imgserve [flags]
//
// Flags override IMGSERVE_* environment variables, which override the
// optional YAML file named by --config or IMGSERVE_CONFIG:
//
//	--root               gallery root (default: working directory)
//	--host, -p/--port    listen address (default 0.0.0.0:8000)
//	--threads            requests handled at once (default 8)
//	--page-size          images per page (default 300)
//	--window             page links shown around the current page (default 10)
//	--sort, --date-order default ordering (default date, desc)
//	--locale             caption locale, e.g. en_US or de_DE
//	--flat               serve the root only, as produced by linkfarm
//	--strict-symlinks    reject symlinks that lead out of the root
//	--metrics            serve Prometheus metrics on --metrics-port (9090)
//	-v/--verbose         debug logging
//
// # Endpoints
//
//   - GET /?dir=&page=&sort=&order=  gallery page
//   - GET /images/{path}             image bytes, with range support
//   - GET /healthz, /livez, /readyz  health probes
//   - GET /version                   build information
//
// # Graceful Shutdown
//
// On SIGINT or SIGTERM the metrics collector and metrics server are stopped
// first, then the gallery server drains in-flight requests for up to 30s.
package main
