package metrics

import (
	"time"

	"imgserve/internal/logging"
)

// RootChecker reports whether the gallery root can currently be read.
type RootChecker interface {
	CheckRoot() error
}

// Collector periodically checks the gallery root and updates RootAccessible.
type Collector struct {
	checker  RootChecker
	interval time.Duration
	stopChan chan struct{}

	// lastErr is only touched by the collect loop.
	lastErr error
	checked bool
}

// NewCollector creates a new metrics collector
func NewCollector(checker RootChecker, interval time.Duration) *Collector {
	return &Collector{
		checker:  checker,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.checker == nil {
		return
	}

	err := c.checker.CheckRoot()
	if err != nil {
		RootAccessible.Set(0)
	} else {
		RootAccessible.Set(1)
	}

	// Log transitions only.
	switch {
	case err != nil && (c.lastErr == nil || !c.checked):
		logging.Warn("Gallery root is not accessible: %v", err)
	case err == nil && c.lastErr != nil:
		logging.Info("Gallery root is accessible again")
	}
	c.lastErr = err
	c.checked = true
}
