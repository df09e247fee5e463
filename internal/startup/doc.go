// Package startup handles configuration loading and startup/shutdown logging
// for the gallery server.
//
// # Configuration
//
// [LoadConfig] layers four sources, each overriding the one before:
//
//  1. Built-in defaults ([DefaultConfig])
//  2. An optional YAML file named by --config or IMGSERVE_CONFIG
//  3. IMGSERVE_* environment variables
//  4. Command-line flags
//
// The supported environment variables are:
//
//   - IMGSERVE_ROOT: Directory to serve (default: working directory)
//   - IMGSERVE_HOST, IMGSERVE_PORT: Listen address (default: 0.0.0.0:8000)
//   - IMGSERVE_THREADS: Requests handled at once (default: 8)
//   - IMGSERVE_METRICS_ENABLED, IMGSERVE_METRICS_PORT: Prometheus listener (default: off, 9090)
//   - IMGSERVE_PAGE_SIZE: Images per page (default: 300)
//   - IMGSERVE_WINDOW_SIZE: Page links around the current page (default: 10)
//   - IMGSERVE_SORT, IMGSERVE_DATE_ORDER: Default ordering (default: date, desc)
//   - IMGSERVE_LOCALE: Caption locale (default: en_US)
//   - IMGSERVE_FLAT: Serve the root as one flat gallery
//   - IMGSERVE_STRICT_SYMLINKS: Reject symlinks leading out of the root
//   - IMGSERVE_LOG_STATIC_FILES, IMGSERVE_LOG_HEALTH_CHECKS: Access log filtering
//   - IMGSERVE_VERBOSE: Debug logging
//
// The root must exist and be a directory; it is made absolute once here and
// never re-read from the environment afterwards.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
//   - [LogStartup]: Banner and system information
//   - [LogConfig]: Effective configuration
//   - [LogHTTPRoutes]: Registered HTTP routes, grouped
//   - [LogRootInfo]: What the gallery root contains
//   - [LogServerStarted]: Endpoints and startup duration
//   - [LogShutdownInitiated], [LogShutdownStep], [LogShutdownComplete]: Graceful shutdown
package startup
