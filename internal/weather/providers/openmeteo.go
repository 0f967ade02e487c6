package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-display/internal/weather"
)

const threeHours = int64(3 * time.Hour / time.Second)

// OpenMeteoProvider implements weather.ForecastProvider for Open-Meteo.
// No API key is required. Hourly values are thinned to UTC-aligned 3-hour slots.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		days:    5,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: NoRetry,
		},
		circuit: newBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, c weather.Coordinates) ([]weather.Sample, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", c.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", c.Longitude))
	values.Set("hourly", "temperature_2m,weathercode")
	values.Set("timeformat", "unixtime")
	values.Set("forecast_days", fmt.Sprint(p.days))

	var payload struct {
		Hourly struct {
			Time        []int64    `json:"time"`
			Temperature []*float64 `json:"temperature_2m"`
			WeatherCode []*int     `json:"weathercode"`
		} `json:"hourly"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", weather.ErrFetch, p.name, err)
	}

	h := payload.Hourly
	var samples []weather.Sample
	for i, ts := range h.Time {
		if ts%threeHours != 0 {
			continue
		}
		var temp *float64
		if i < len(h.Temperature) {
			temp = h.Temperature[i]
		}
		cond := weather.ConditionOther
		if i < len(h.WeatherCode) && h.WeatherCode[i] != nil {
			cond = mapOpenMeteoCondition(*h.WeatherCode[i])
		}
		t := orNaN(temp)
		samples = append(samples, weather.Sample{
			Timestamp:   time.Unix(ts, 0).UTC(),
			Temperature: t,
			TempMin:     t,
			TempMax:     t,
			Weather:     weather.Weather{Condition: cond, Description: string(cond)},
		})
	}
	return samples, nil
}

// mapOpenMeteoCondition maps WMO weather interpretation codes.
func mapOpenMeteoCondition(code int) weather.Condition {
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionClouds
	case code == 45 || code == 48:
		return weather.ConditionAtmosphere
	case code >= 51 && code <= 57:
		return weather.ConditionDrizzle
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95 && code <= 99:
		return weather.ConditionThunderstorm
	default:
		return weather.ConditionOther
	}
}
