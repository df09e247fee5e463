package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"imgserve/internal/confine"
	"imgserve/internal/filesystem"
	"imgserve/internal/handlers"
	"imgserve/internal/logging"
	"imgserve/internal/metrics"
	"imgserve/internal/middleware"
	"imgserve/internal/render"
	"imgserve/internal/startup"

	"github.com/gorilla/mux"
	"github.com/spf13/pflag"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	if config.Verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	startup.LogStartup()
	startup.LogConfig(config)

	// Filesystem timings feed the Prometheus histograms
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, runtime.Version())

	h, router, err := newServer(config)
	if err != nil {
		startup.LogFatal("Failed to initialize server: %v", err)
	}

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)
	startup.LogRootInfo(config.RootDir)

	// Create server
	srv := &http.Server{
		Addr:              config.Addr(),
		Handler:           wrapMiddleware(router, config),
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	// Start metrics server and collector if enabled
	var metricsSrv *http.Server
	var collector *metrics.Collector
	if config.MetricsEnabled {
		collector = metrics.NewCollector(h, 30*time.Second)
		collector.Start()

		metricsSrv = newMetricsServer(config.MetricsAddr(), h.MetricsHandler())
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, collector)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Addr:            config.Addr(),
		MetricsAddr:     config.MetricsAddr(),
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}
}

// newServer builds the resolver, renderer and handlers for config and
// returns them with the router.
func newServer(config *startup.Config) (*handlers.Handlers, *mux.Router, error) {
	resolver, err := confine.New(config.RootDir, confine.Options{
		RejectSymlinkEscape: config.StrictSymlinks,
	})
	if err != nil {
		return nil, nil, err
	}

	renderer, err := render.New()
	if err != nil {
		return nil, nil, err
	}

	h, err := handlers.New(config, resolver, renderer)
	if err != nil {
		return nil, nil, err
	}

	return h, h.NewRouter(config.Flat), nil
}

// wrapMiddleware applies the middleware chain. The limiter is outermost so
// that queued requests are neither timed nor logged until they get a slot.
func wrapMiddleware(router http.Handler, config *startup.Config) http.Handler {
	compressionConfig := middleware.DefaultCompressionConfig()
	handler := middleware.Compression(compressionConfig)(router)

	handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	return middleware.Limit(middleware.DefaultLimitConfig(config.Threads))(handler)
}

func newMetricsServer(addr string, metricsHandler http.Handler) *http.Server {
	serveMux := http.NewServeMux()
	serveMux.Handle("/metrics", metricsHandler)
	return &http.Server{
		Addr:              addr,
		Handler:           serveMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if collector != nil {
		startup.LogShutdownStep("Stopping metrics collector")
		collector.Stop()
		startup.LogShutdownStepComplete("Metrics collector stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
