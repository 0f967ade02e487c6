package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes pipeline outcomes to Prometheus. It implements weather.Observer.
type Collector struct {
	runs           *prometheus.CounterVec
	runDuration    prometheus.Histogram
	skippedSamples prometheus.Counter
	geocodeFailed  prometheus.Counter
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_display",
			Name:      "refresh_runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_display",
			Name:      "refresh_duration_seconds",
			Help:      "Wall time of a pipeline run.",
			Buckets:   prometheus.DefBuckets,
		}),
		skippedSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_display",
			Name:      "malformed_samples_total",
			Help:      "Forecast entries skipped because of missing fields.",
		}),
		geocodeFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_display",
			Name:      "geocode_failures_total",
			Help:      "Reverse lookups that fell back to the placeholder label.",
		}),
	}
	reg.MustRegister(c.runs, c.runDuration, c.skippedSamples, c.geocodeFailed)
	return c
}

func (c *Collector) RunFinished(outcome string, elapsed time.Duration) {
	c.runs.WithLabelValues(outcome).Inc()
	c.runDuration.Observe(elapsed.Seconds())
}

func (c *Collector) SamplesSkipped(n int) {
	c.skippedSamples.Add(float64(n))
}

func (c *Collector) GeocodeFailed() {
	c.geocodeFailed.Inc()
}
