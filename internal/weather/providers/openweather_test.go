package providers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/weather-display/internal/weather"
)

const testAPIKey = "test-key"

const owmForecastJSON = `{
  "cod": "200",
  "list": [
    {"dt": 1714532400, "main": {"temp": 14.2, "temp_min": 13.1, "temp_max": 15.0},
     "weather": [{"main": "Clouds", "description": "broken clouds"}], "dt_txt": "2024-05-01 03:00:00"},
    {"dt": 1714543200, "main": {"temp": 16.0, "temp_max": 17.5},
     "weather": [{"main": "Rain", "description": "light rain"}], "dt_txt": "2024-05-01 06:00:00"},
    {"dt": 1714554000, "main": {"temp": 12.0, "temp_min": 11.0, "temp_max": 12.5},
     "weather": [{"main": "Mist", "description": "mist"}], "dt_txt": "2024-05-01 09:00:00"},
    {"main": {"temp": 10.0, "temp_min": 9.0, "temp_max": 11.0}, "weather": []}
  ]
}`

func newTestOpenWeather(baseURL string) *OpenWeatherProvider {
	p := NewOpenWeatherProvider(&http.Client{Timeout: 5 * time.Second}, testAPIKey)
	p.baseURL = baseURL
	return p
}

func TestOpenWeatherFetchForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("lat"); got != "37.5665" {
			t.Errorf("expected lat=37.5665, got %s", got)
		}
		if got := q.Get("lon"); got != "126.978" {
			t.Errorf("expected lon=126.978, got %s", got)
		}
		if got := q.Get("appid"); got != testAPIKey {
			t.Errorf("expected appid=%s, got %s", testAPIKey, got)
		}
		if got := q.Get("units"); got != "metric" {
			t.Errorf("expected units=metric, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(owmForecastJSON))
	}))
	defer srv.Close()

	samples, err := newTestOpenWeather(srv.URL).FetchForecast(context.Background(), weather.Coordinates{Latitude: 37.5665, Longitude: 126.978})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(samples))
	}

	first := samples[0]
	if !first.Timestamp.Equal(time.Unix(1714532400, 0)) {
		t.Errorf("timestamp = %v", first.Timestamp)
	}
	if first.TempMin != 13.1 || first.TempMax != 15.0 || first.Temperature != 14.2 {
		t.Errorf("unexpected temperatures %+v", first)
	}
	if first.Weather.Condition != weather.ConditionClouds || first.Weather.Description != "broken clouds" {
		t.Errorf("unexpected weather %+v", first.Weather)
	}

	if !math.IsNaN(samples[1].TempMin) || samples[1].Valid() {
		t.Errorf("missing temp_min must yield an invalid sample, got %+v", samples[1])
	}
	if samples[2].Weather.Condition != weather.ConditionAtmosphere {
		t.Errorf("Mist should map to Atmosphere, got %s", samples[2].Weather.Condition)
	}
	if samples[3].Valid() || samples[3].Weather.Condition != weather.ConditionOther {
		t.Errorf("entry without dt must be invalid with Other condition, got %+v", samples[3])
	}
}

func TestOpenWeatherDoesNotRetry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestOpenWeather(srv.URL).FetchForecast(context.Background(), weather.Coordinates{})
	if !errors.Is(err, weather.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}
}

func TestOpenWeatherUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := newTestOpenWeather(srv.URL).FetchForecast(context.Background(), weather.Coordinates{})
	if !errors.Is(err, weather.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestOpenWeatherMissingKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")
	if _, err := p.FetchForecast(context.Background(), weather.Coordinates{}); !errors.Is(err, weather.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestOpenWeatherMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list": [`))
	}))
	defer srv.Close()

	if _, err := newTestOpenWeather(srv.URL).FetchForecast(context.Background(), weather.Coordinates{}); !errors.Is(err, weather.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}
