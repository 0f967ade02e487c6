package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-display/internal/weather"
)

// OpenWeatherProvider implements weather.ForecastProvider for the
// OpenWeatherMap 5 day / 3 hour forecast.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: NoRetry,
		},
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// owmEntry is one element of the forecast "list". Numbers are pointers so that
// absent fields can be told apart from zero.
type owmEntry struct {
	Dt   *int64 `json:"dt"`
	Main struct {
		Temp    *float64 `json:"temp"`
		TempMin *float64 `json:"temp_min"`
		TempMax *float64 `json:"temp_max"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, c weather.Coordinates) ([]weather.Sample, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: openweather api key is not configured", weather.ErrFetch)
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	var payload struct {
		List []owmEntry `json:"list"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", weather.ErrFetch, p.name, err)
	}

	samples := make([]weather.Sample, 0, len(payload.List))
	for _, e := range payload.List {
		samples = append(samples, e.toSample())
	}
	return samples, nil
}

func (e owmEntry) toSample() weather.Sample {
	s := weather.Sample{
		Temperature: orNaN(e.Main.Temp),
		TempMin:     orNaN(e.Main.TempMin),
		TempMax:     orNaN(e.Main.TempMax),
		Weather:     weather.Weather{Condition: weather.ConditionOther},
	}
	if e.Dt != nil {
		s.Timestamp = time.Unix(*e.Dt, 0).UTC()
	}
	if len(e.Weather) > 0 {
		s.Weather = weather.Weather{
			Condition:   weather.ParseCondition(e.Weather[0].Main),
			Description: e.Weather[0].Description,
		}
	}
	return s
}
