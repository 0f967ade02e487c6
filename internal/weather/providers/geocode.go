package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-display/internal/weather"
)

var errGeocoderKey = errors.New("geocoder api key is not configured")

// reverseLookup is swapped out in tests.
var reverseLookup = geocoder.GeocodingReverse

// GoogleGeocoder implements weather.Geocoder on the Google Geocoding API.
type GoogleGeocoder struct {
	configured bool
}

// NewGoogleGeocoder configures the geocoding client. The library keeps the key
// in package state, so only one key per process is supported.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	if apiKey != "" {
		geocoder.ApiKey = apiKey
	}
	return &GoogleGeocoder{configured: apiKey != ""}
}

// Resolve looks up the most specific names for c.
func (g *GoogleGeocoder) Resolve(ctx context.Context, c weather.Coordinates) (weather.Label, error) {
	if !g.configured {
		return weather.Label{}, fmt.Errorf("%w: %v", weather.ErrGeocode, errGeocoderKey)
	}

	type result struct {
		addrs []geocoder.Address
		err   error
	}
	// The client has no context support; abandon the lookup when ctx ends.
	lookup := reverseLookup
	ch := make(chan result, 1)
	go func() {
		addrs, err := lookup(geocoder.Location{Latitude: c.Latitude, Longitude: c.Longitude})
		ch <- result{addrs, err}
	}()

	select {
	case <-ctx.Done():
		return weather.Label{}, fmt.Errorf("%w: %v", weather.ErrGeocode, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return weather.Label{}, fmt.Errorf("%w: %v", weather.ErrGeocode, r.err)
		}
		if len(r.addrs) == 0 {
			return weather.Label{}, fmt.Errorf("%w: no results", weather.ErrGeocode)
		}
		return labelFromAddress(r.addrs[0]), nil
	}
}

// labelFromAddress applies the fallback chains
// city -> state for the primary name and district -> street -> county for the secondary.
func labelFromAddress(a geocoder.Address) weather.Label {
	return weather.Label{
		Primary:   firstNonEmpty(a.City, a.State),
		Secondary: firstNonEmpty(a.District, a.Street, a.County),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
