package providers

import (
	"context"

	"github.com/i474232898/weather-display/internal/weather"
)

// StaticLocator reports a fixed, configured position. Disabling it behaves
// like a refused location permission.
type StaticLocator struct {
	enabled bool
	coords  *weather.Coordinates
}

// NewStaticLocator creates a locator; coords may be nil when no position is known.
func NewStaticLocator(enabled bool, coords *weather.Coordinates) *StaticLocator {
	return &StaticLocator{enabled: enabled, coords: coords}
}

func (l *StaticLocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	if !l.enabled {
		return weather.Coordinates{}, weather.ErrPermissionDenied
	}
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}
	if l.coords == nil {
		return weather.Coordinates{}, weather.ErrLocationUnavailable
	}
	return *l.coords, nil
}
