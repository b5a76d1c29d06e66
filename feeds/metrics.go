package feeds

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// Reasons a raw record does not make it into the feed
const (
	SkipNoText   = "no_text"
	SkipTooShort = "too_short"
)

// Metrics counts what a build did. Each build gets its own registry so
// counters never leak between runs.
type Metrics struct {
	registry *prometheus.Registry

	Loaded    prometheus.Counter
	Skipped   *prometheus.CounterVec
	Written   prometheus.Counter
	WithImage prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Loaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postfeed_records_loaded_total",
			Help: "Raw records read from the export",
		}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "postfeed_records_skipped_total",
			Help: "Raw records left out of the feed",
		}, []string{"reason"}),
		Written: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postfeed_posts_written_total",
			Help: "Posts written to the feed",
		}),
		WithImage: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postfeed_posts_with_image_total",
			Help: "Written posts that have an image",
		}),
	}

	m.registry.MustRegister(m.Loaded, m.Skipped, m.Written, m.WithImage)

	// Make both reasons show up even when nothing was skipped
	m.Skipped.WithLabelValues(SkipNoText)
	m.Skipped.WithLabelValues(SkipTooShort)

	return m
}

// Gatherer exposes the registry, mostly for tests
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the counters in the Prometheus text format, the way
// the node exporter textfile collector expects them
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("failed to write metrics: %w", err)}
	}
	return nil
}
