// Package metrics exposes pipeline progress as Prometheus metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lacev"

// Observer records pipeline progress on a private registry. It implements
// pipeline.Observer.
type Observer struct {
	registry *prometheus.Registry

	windows  prometheus.Counter
	failures *prometheus.CounterVec
	progress prometheus.Gauge

	mu   sync.Mutex
	best int
}

// New returns an Observer whose metrics carry a constant channel label.
func New(channel string) *Observer {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"channel": channel}

	return &Observer{
		registry: reg,
		windows: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "windows_processed_total",
			Help:        "Analysis windows whose features have been extracted.",
			ConstLabels: labels,
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "feature_failures_total",
			Help:        "Feature cells left missing, by feature.",
			ConstLabels: labels,
		}, []string{"feature"}),
		progress: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "window_progress_ratio",
			Help:        "Fraction of windows finished in the current run.",
			ConstLabels: labels,
		}),
	}
}

// WindowDone counts a finished window. The progress gauge only moves
// forward even when workers report out of order.
func (o *Observer) WindowDone(done, total int) {
	o.windows.Inc()
	if total <= 0 {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if done > o.best {
		o.best = done
		o.progress.Set(float64(done) / float64(total))
	}
}

// FeatureFailed counts one missing cell.
func (o *Observer) FeatureFailed(feature string, _ error) {
	o.failures.WithLabelValues(feature).Inc()
}

// Registry returns the registry holding the metrics.
func (o *Observer) Registry() *prometheus.Registry { return o.registry }

// WriteTextfile writes the metrics in the text exposition format, for the
// node exporter textfile collector.
func (o *Observer) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, o.registry)
}
