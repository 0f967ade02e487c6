package providers

import (
	"fmt"
	"net/http"

	"github.com/i474232898/weather-display/internal/weather"
)

// Keys holds the credentials of the keyed providers.
type Keys struct {
	OpenWeather string
	WeatherAPI  string
}

// NewForecastProvider builds the provider registered under name.
func NewForecastProvider(name string, client *http.Client, keys Keys) (weather.ForecastProvider, error) {
	switch name {
	case "openweather":
		return NewOpenWeatherProvider(client, keys.OpenWeather), nil
	case "weatherapi":
		return NewWeatherAPIProvider(client, keys.WeatherAPI), nil
	case "openmeteo":
		return NewOpenMeteoProvider(client), nil
	default:
		return nil, fmt.Errorf("unknown forecast provider %q", name)
	}
}

var (
	_ weather.ForecastProvider = (*OpenWeatherProvider)(nil)
	_ weather.ForecastProvider = (*WeatherAPIProvider)(nil)
	_ weather.ForecastProvider = (*OpenMeteoProvider)(nil)
	_ weather.Geocoder         = (*GoogleGeocoder)(nil)
	_ weather.Locator          = (*StaticLocator)(nil)
)
