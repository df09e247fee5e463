package startup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"imgserve/internal/gallery"
	"imgserve/internal/logging"
	"imgserve/internal/pagination"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	RootDir         string `yaml:"root"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	Threads         int    `yaml:"threads"`
	MetricsPort     int    `yaml:"metrics_port"`
	MetricsEnabled  bool   `yaml:"metrics_enabled"`
	PageSize        int    `yaml:"page_size"`
	WindowSize      int    `yaml:"window_size"`
	DefaultSort     string `yaml:"sort"`
	DateOrder       string `yaml:"date_order"`
	Locale          string `yaml:"locale"`
	Flat            bool   `yaml:"flat"`
	StrictSymlinks  bool   `yaml:"strict_symlinks"`
	LogStaticFiles  bool   `yaml:"log_static_files"`
	LogHealthChecks bool   `yaml:"log_health_checks"`
	Verbose         bool   `yaml:"verbose"`

	// ConfigFile is the YAML file the values were read from, if any.
	ConfigFile string `yaml:"-"`
}

// DefaultConfig returns the built-in defaults. RootDir is the working
// directory at the time of the call.
func DefaultConfig() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &Config{
		RootDir:         wd,
		Host:            "0.0.0.0",
		Port:            8000,
		Threads:         8,
		MetricsPort:     9090,
		MetricsEnabled:  false,
		PageSize:        pagination.DefaultPageSize,
		WindowSize:      pagination.DefaultWindowSize,
		DefaultSort:     string(gallery.SortByDate),
		DateOrder:       string(gallery.SortDesc),
		Locale:          gallery.DefaultLocale,
		LogStaticFiles:  false,
		LogHealthChecks: true,
	}
}

// Addr returns the listen address of the gallery server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// MetricsAddr returns the listen address of the metrics server.
func (c *Config) MetricsAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.MetricsPort))
}

// SortDefaults returns the configured default sort.
func (c *Config) SortDefaults() gallery.SortDefaults {
	field, _ := gallery.ParseSortField(c.DefaultSort)
	order, _ := gallery.ParseSortOrder(c.DateOrder)
	return gallery.SortDefaults{Field: field, DateOrder: order}
}

// flagValues mirrors Config for the command line.
type flagValues struct {
	configFile string
	cfg        Config
}

func newFlagSet(name string, v *flagValues, defaults *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVar(&v.configFile, "config", "", "YAML configuration file (env IMGSERVE_CONFIG)")
	fs.StringVar(&v.cfg.RootDir, "root", defaults.RootDir, "directory to serve (env IMGSERVE_ROOT)")
	fs.StringVar(&v.cfg.Host, "host", defaults.Host, "host to bind to (env IMGSERVE_HOST)")
	fs.IntVarP(&v.cfg.Port, "port", "p", defaults.Port, "port to listen on (env IMGSERVE_PORT)")
	fs.IntVar(&v.cfg.Threads, "threads", defaults.Threads, "maximum requests handled at once (env IMGSERVE_THREADS)")
	fs.BoolVar(&v.cfg.MetricsEnabled, "metrics", defaults.MetricsEnabled, "serve Prometheus metrics (env IMGSERVE_METRICS_ENABLED)")
	fs.IntVar(&v.cfg.MetricsPort, "metrics-port", defaults.MetricsPort, "port of the metrics listener (env IMGSERVE_METRICS_PORT)")
	fs.IntVar(&v.cfg.PageSize, "page-size", defaults.PageSize, "images per page (env IMGSERVE_PAGE_SIZE)")
	fs.IntVar(&v.cfg.WindowSize, "window", defaults.WindowSize, "page links shown around the current page (env IMGSERVE_WINDOW_SIZE)")
	fs.StringVar(&v.cfg.DefaultSort, "sort", defaults.DefaultSort, "default sort field: date or name (env IMGSERVE_SORT)")
	fs.StringVar(&v.cfg.DateOrder, "date-order", defaults.DateOrder, "default date direction: desc or asc (env IMGSERVE_DATE_ORDER)")
	fs.StringVar(&v.cfg.Locale, "locale", defaults.Locale, "caption locale, e.g. en_US or de_DE (env IMGSERVE_LOCALE)")
	fs.BoolVar(&v.cfg.Flat, "flat", defaults.Flat, "serve the root as one flat gallery (env IMGSERVE_FLAT)")
	fs.BoolVar(&v.cfg.StrictSymlinks, "strict-symlinks", defaults.StrictSymlinks, "reject symlinks that lead out of the root (env IMGSERVE_STRICT_SYMLINKS)")
	fs.BoolVar(&v.cfg.LogStaticFiles, "log-static-files", defaults.LogStaticFiles, "log image requests (env IMGSERVE_LOG_STATIC_FILES)")
	fs.BoolVar(&v.cfg.LogHealthChecks, "log-health-checks", defaults.LogHealthChecks, "log health check requests (env IMGSERVE_LOG_HEALTH_CHECKS)")
	fs.BoolVarP(&v.cfg.Verbose, "verbose", "v", defaults.Verbose, "enable debug logging (env IMGSERVE_VERBOSE)")

	return fs
}

// LoadConfig builds the configuration from, in increasing precedence, the
// defaults, an optional YAML file, IMGSERVE_* environment variables and the
// command-line flags in args (without the program name).
//
// pflag.ErrHelp is returned unwrapped when -h or --help is given.
func LoadConfig(args []string) (*Config, error) {
	defaults := DefaultConfig()

	var flags flagValues
	fs := newFlagSet("imgserve", &flags, defaults)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := defaults

	cfg.ConfigFile = getEnv("IMGSERVE_CONFIG", "")
	if fs.Changed("config") {
		cfg.ConfigFile = flags.configFile
	}
	if cfg.ConfigFile != "" {
		if err := loadFile(cfg.ConfigFile, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	applyFlags(fs, &flags.cfg, cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.RootDir = getEnv("IMGSERVE_ROOT", cfg.RootDir)
	cfg.Host = getEnv("IMGSERVE_HOST", cfg.Host)
	cfg.Port = getEnvInt("IMGSERVE_PORT", cfg.Port)
	cfg.Threads = getEnvInt("IMGSERVE_THREADS", cfg.Threads)
	cfg.MetricsEnabled = getEnvBool("IMGSERVE_METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.MetricsPort = getEnvInt("IMGSERVE_METRICS_PORT", cfg.MetricsPort)
	cfg.PageSize = getEnvInt("IMGSERVE_PAGE_SIZE", cfg.PageSize)
	cfg.WindowSize = getEnvInt("IMGSERVE_WINDOW_SIZE", cfg.WindowSize)
	cfg.DefaultSort = getEnv("IMGSERVE_SORT", cfg.DefaultSort)
	cfg.DateOrder = getEnv("IMGSERVE_DATE_ORDER", cfg.DateOrder)
	cfg.Locale = getEnv("IMGSERVE_LOCALE", cfg.Locale)
	cfg.Flat = getEnvBool("IMGSERVE_FLAT", cfg.Flat)
	cfg.StrictSymlinks = getEnvBool("IMGSERVE_STRICT_SYMLINKS", cfg.StrictSymlinks)
	cfg.LogStaticFiles = getEnvBool("IMGSERVE_LOG_STATIC_FILES", cfg.LogStaticFiles)
	cfg.LogHealthChecks = getEnvBool("IMGSERVE_LOG_HEALTH_CHECKS", cfg.LogHealthChecks)
	cfg.Verbose = getEnvBool("IMGSERVE_VERBOSE", cfg.Verbose)
}

// applyFlags copies the flags that were set explicitly.
func applyFlags(fs *pflag.FlagSet, from, to *Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "root":
			to.RootDir = from.RootDir
		case "host":
			to.Host = from.Host
		case "port":
			to.Port = from.Port
		case "threads":
			to.Threads = from.Threads
		case "metrics":
			to.MetricsEnabled = from.MetricsEnabled
		case "metrics-port":
			to.MetricsPort = from.MetricsPort
		case "page-size":
			to.PageSize = from.PageSize
		case "window":
			to.WindowSize = from.WindowSize
		case "sort":
			to.DefaultSort = from.DefaultSort
		case "date-order":
			to.DateOrder = from.DateOrder
		case "locale":
			to.Locale = from.Locale
		case "flat":
			to.Flat = from.Flat
		case "strict-symlinks":
			to.StrictSymlinks = from.StrictSymlinks
		case "log-static-files":
			to.LogStaticFiles = from.LogStaticFiles
		case "log-health-checks":
			to.LogHealthChecks = from.LogHealthChecks
		case "verbose":
			to.Verbose = from.Verbose
		}
	})
}

func (c *Config) validate() error {
	if c.RootDir == "" {
		return fmt.Errorf("root directory is required")
	}
	root, err := filepath.Abs(c.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory path: %w", err)
	}
	c.RootDir = root

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", root)
	}

	if err := checkPort("port", c.Port); err != nil {
		return err
	}
	if c.MetricsEnabled {
		if err := checkPort("metrics port", c.MetricsPort); err != nil {
			return err
		}
		if c.MetricsPort == c.Port {
			return fmt.Errorf("metrics port must differ from the gallery port (%d)", c.Port)
		}
	}

	if c.Threads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", c.Threads)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be at least 1, got %d", c.PageSize)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window size must be at least 1, got %d", c.WindowSize)
	}

	field, ok := gallery.ParseSortField(c.DefaultSort)
	if !ok {
		return fmt.Errorf("invalid sort %q: want date or name", c.DefaultSort)
	}
	c.DefaultSort = string(field)

	order, ok := gallery.ParseSortOrder(c.DateOrder)
	if !ok {
		return fmt.Errorf("invalid date order %q: want desc or asc", c.DateOrder)
	}
	c.DateOrder = string(order)

	if _, err := gallery.NewCaptionFormatter(c.Locale, nil); err != nil {
		return err
	}

	return nil
}

func checkPort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return nil
}

// LogConfig logs the effective configuration.
func LogConfig(c *Config) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if c.ConfigFile != "" {
		logging.Info("  Config file:        %s", c.ConfigFile)
	}
	logging.Info("  Root directory:     %s", c.RootDir)
	logging.Info("  Listen address:     %s", c.Addr())
	logging.Info("  Threads:            %d", c.Threads)
	logging.Info("  Page size:          %d", c.PageSize)
	logging.Info("  Page window:        %d", c.WindowSize)
	logging.Info("  Default sort:       %s (dates %s)", c.DefaultSort, c.DateOrder)
	logging.Info("  Caption locale:     %s", c.Locale)
	logging.Info("  Layout:             %s", layoutString(c.Flat))
	logging.Info("  Strict symlinks:    %v", c.StrictSymlinks)
	logging.Info("  Metrics:            %s", enabledString(c.MetricsEnabled))
	if c.MetricsEnabled {
		logging.Info("  Metrics address:    %s", c.MetricsAddr())
	}
	logging.Info("  Log level:          %s", logging.GetLevel())
	logging.Info("")
}

func layoutString(flat bool) string {
	if flat {
		return "flat"
	}
	return "directory tree"
}
