package weather

import (
	"context"
)

// Locator supplies the device coordinates. It returns ErrPermissionDenied when
// location access is refused and ErrLocationUnavailable when no fix is available.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Geocoder turns coordinates into a display label (best effort).
type Geocoder interface {
	Resolve(ctx context.Context, c Coordinates) (Label, error)
}

// ForecastProvider abstracts a 3-hour forecast source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
// Samples are returned in the provider's chronological order.
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, c Coordinates) ([]Sample, error)
}

// Ticket identifies one pipeline run. Seq grows monotonically per store.
type Ticket struct {
	Seq uint64
	ID  string
}

// Store is the contract the in-memory display holder must satisfy.
type Store interface {
	Begin() Ticket
	Publish(t Ticket, d Display) error
	Latest() (Display, error)
}
