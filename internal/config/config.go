package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-display/internal/weather"
)

var validate = validator.New()

type AppConfig struct {
	// ForecastProvider selects the upstream forecast API.
	ForecastProvider  string `validate:"oneof=openweather weatherapi openmeteo"`
	OpenWeatherAPIKey string `validate:"required_if=ForecastProvider openweather"`
	WeatherAPIKey     string `validate:"required_if=ForecastProvider weatherapi"`
	GeocoderAPIKey    string

	// Location access. Disabled behaves like a denied permission.
	LocationEnabled bool
	Latitude        *float64 `validate:"omitempty,min=-90,max=90"`
	Longitude       *float64 `validate:"omitempty,min=-180,max=180"`
	PlaceholderName string

	// Timezone used for calendar days and hour labels.
	Timezone *time.Location
	Policy   weather.WindowPolicy

	RefreshInterval      time.Duration `validate:"gte=1m"`
	RefreshRatePerMinute int           `validate:"gte=1"`
	HTTPTimeout          time.Duration `validate:"gt=0"`

	Port string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is honoured when present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.ForecastProvider = strings.ToLower(getenvDefault("FORECAST_PROVIDER", "openweather"))
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	enabled, err := getenvBool("LOCATION_ENABLED", true)
	if err != nil {
		return nil, err
	}
	cfg.LocationEnabled = enabled
	lat, err := getenvFloat("LOCATION_LAT")
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("LOCATION_LON")
	if err != nil {
		return nil, err
	}
	if (lat == nil) != (lon == nil) {
		return nil, fmt.Errorf("LOCATION_LAT and LOCATION_LON must be set together")
	}
	cfg.Latitude, cfg.Longitude = lat, lon
	cfg.PlaceholderName = getenvDefault("LOCATION_PLACEHOLDER", "Unknown location")

	tz, err := time.LoadLocation(getenvDefault("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Timezone = tz

	policy, err := weather.ParseWindowPolicy(getenvDefault("TODAY_WINDOW_POLICY", string(weather.PolicyNow)))
	if err != nil {
		return nil, fmt.Errorf("invalid TODAY_WINDOW_POLICY: %w", err)
	}
	cfg.Policy = policy

	interval, err := time.ParseDuration(getenvDefault("REFRESH_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	rpm, err := getenvInt("REFRESH_RATE_PER_MINUTE", 6)
	if err != nil {
		return nil, err
	}
	cfg.RefreshRatePerMinute = rpm
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Coordinates returns the configured position, or nil when none is set.
func (c *AppConfig) Coordinates() *weather.Coordinates {
	if c.Latitude == nil || c.Longitude == nil {
		return nil
	}
	return &weather.Coordinates{Latitude: *c.Latitude, Longitude: *c.Longitude}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getenvFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
