package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-display/internal/common"
	"github.com/i474232898/weather-display/internal/weather"
)

// WeatherAPIProvider implements weather.ForecastProvider for WeatherAPI.com.
// WeatherAPI reports hourly slots; every third hour is kept to match the
// 3-hour sample granularity.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		days:    5,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: NoRetry,
		},
		circuit: newBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, c weather.Coordinates) ([]weather.Sample, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: weatherapi api key is not configured", weather.ErrFetch)
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts "lat,lon".
	values.Set("q", fmt.Sprintf("%f,%f", c.Latitude, c.Longitude))
	values.Set("days", fmt.Sprint(p.days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload struct {
		Forecast struct {
			Forecastday []struct {
				Hour []struct {
					TimeEpoch *int64   `json:"time_epoch"`
					TempC     *float64 `json:"temp_c"`
					Condition struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", weather.ErrFetch, p.name, err)
	}

	var samples []weather.Sample
	for _, day := range payload.Forecast.Forecastday {
		for i, h := range day.Hour {
			if i%3 != 0 {
				continue
			}
			// Hourly entries carry a single temperature; it bounds the slot both ways.
			temp := orNaN(h.TempC)
			s := weather.Sample{
				Temperature: temp,
				TempMin:     temp,
				TempMax:     temp,
				Weather: weather.Weather{
					Condition:   mapWeatherAPICondition(h.Condition.Text),
					Description: h.Condition.Text,
				},
			}
			if h.TimeEpoch != nil {
				s.Timestamp = time.Unix(*h.TimeEpoch, 0).UTC()
			}
			samples = append(samples, s)
		}
	}
	return samples, nil
}

func mapWeatherAPICondition(text string) weather.Condition {
	switch {
	case text == "":
		return weather.ConditionOther
	case common.HasAny(text, "thunder"):
		return weather.ConditionThunderstorm
	case common.HasAny(text, "drizzle"):
		return weather.ConditionDrizzle
	// Snow, sleet and ice pellet showers are reported as "... showers".
	case common.HasAny(text, "snow", "sleet", "blizzard", "ice pellets"):
		return weather.ConditionSnow
	case common.HasAny(text, "rain", "shower"):
		return weather.ConditionRain
	case common.HasAny(text, "mist", "fog", "haze"):
		return weather.ConditionAtmosphere
	case common.HasAny(text, "cloud", "overcast"):
		return weather.ConditionClouds
	case common.HasAny(text, "sunny", "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionOther
	}
}
