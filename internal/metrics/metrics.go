// Package metrics exposes snapshot build counters in Prometheus format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline holds the build metrics on a private registry, so several
// builders in one process do not collide on the default one.
type Pipeline struct {
	Registry *prometheus.Registry

	Snapshots prometheus.Counter
	Failures  *prometheus.CounterVec
	Duration  prometheus.Histogram
}

func NewPipeline() *Pipeline {
	p := &Pipeline{
		Registry: prometheus.NewRegistry(),
		Snapshots: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "barscope_snapshots_built_total",
				Help: "Total number of snapshots built",
			},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "barscope_snapshot_failures_total",
				Help: "Total number of bars that failed to produce a snapshot",
			},
			[]string{"kind"}, // malformed_bar|index_out_of_range|panic|other
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "barscope_build_duration_seconds",
				Help:    "Snapshot build duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),
	}
	p.Registry.MustRegister(p.Snapshots, p.Failures, p.Duration)
	return p
}

func (p *Pipeline) ObserveSnapshot() {
	p.Snapshots.Inc()
}

func (p *Pipeline) ObserveFailure(kind string) {
	p.Failures.WithLabelValues(kind).Inc()
}

func (p *Pipeline) ObserveBuild(d time.Duration) {
	p.Duration.Observe(d.Seconds())
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (p *Pipeline) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.Registry)
}
