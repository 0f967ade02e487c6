package providers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/i474232898/weather-display/internal/weather"
)

func TestStaticLocator(t *testing.T) {
	coords := &weather.Coordinates{Latitude: 35.1, Longitude: 129.0}

	if _, err := NewStaticLocator(false, coords).Locate(context.Background()); !errors.Is(err, weather.ErrPermissionDenied) {
		t.Fatalf("disabled locator: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := NewStaticLocator(true, nil).Locate(context.Background()); !errors.Is(err, weather.ErrLocationUnavailable) {
		t.Fatalf("no coordinates: expected ErrLocationUnavailable, got %v", err)
	}
	got, err := NewStaticLocator(true, coords).Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != *coords {
		t.Fatalf("got %+v, want %+v", got, *coords)
	}
}

func TestNewForecastProvider(t *testing.T) {
	for _, name := range []string{"openweather", "weatherapi", "openmeteo"} {
		p, err := NewForecastProvider(name, http.DefaultClient, Keys{OpenWeather: "a", WeatherAPI: "b"})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if p.Name() == "" {
			t.Fatalf("%s: empty provider name", name)
		}
	}
	if _, err := NewForecastProvider("darksky", http.DefaultClient, Keys{}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
