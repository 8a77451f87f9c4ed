// Package metrics records bootstrap stage timings and outcomes with Prometheus.
//
// A console run is a short-lived process, so metrics are not scraped. When a
// textfile path is configured they are written in the node_exporter textfile
// format at the end of the run.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "console"

var ErrWriteTextfile = errors.New("metrics: failed to write textfile")

// Recorder holds the bootstrap collectors on a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry
	stages   *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	duration prometheus.Histogram
	textfile string
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithTextfile writes metrics to path on Flush.
func WithTextfile(path string) Option {
	return func(r *Recorder) { r.textfile = path }
}

// New creates a recorder with its own registry.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		stages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent reaching each bootstrap stage.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Bootstrap outcomes by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total time from start to emitted response.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registry.MustRegister(r.stages, r.outcomes, r.duration)
	return r
}

// ObserveStage records the time taken to reach stage.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.stages.WithLabelValues(stage).Observe(d.Seconds())
}

// Outcome counts one finished run.
func (r *Recorder) Outcome(kind string, total time.Duration) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(kind).Inc()
	r.duration.Observe(total.Seconds())
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Flush writes the textfile when one is configured.
func (r *Recorder) Flush() error {
	if r == nil || r.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		return errors.Join(ErrWriteTextfile, err)
	}
	return nil
}
