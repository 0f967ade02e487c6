package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/i474232898/weather-display/internal/weather"
)

var _ weather.Observer = (*Collector)(nil)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.RunFinished(weather.OutcomeOK, 120*time.Millisecond)
	c.RunFinished(weather.OutcomeOK, 80*time.Millisecond)
	c.RunFinished(weather.OutcomeFetchFailed, time.Second)
	c.SamplesSkipped(3)
	c.SamplesSkipped(0)
	c.GeocodeFailed()

	if got := testutil.ToFloat64(c.runs.WithLabelValues(weather.OutcomeOK)); got != 2 {
		t.Errorf("ok runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.runs.WithLabelValues(weather.OutcomeFetchFailed)); got != 1 {
		t.Errorf("failed runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.skippedSamples); got != 3 {
		t.Errorf("skipped samples = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.geocodeFailed); got != 1 {
		t.Errorf("geocode failures = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(c.runDuration); n != 1 {
		t.Errorf("expected one duration histogram, got %d", n)
	}
}
