package weather

import (
	"math"
	"time"
)

// Condition represents a coded high-level weather category.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionSnow         Condition = "Snow"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionAtmosphere   Condition = "Atmosphere"
	ConditionOther        Condition = "Other"
)

// ParseCondition maps a provider "main" category onto the fixed enumeration.
// OpenWeatherMap reports the atmosphere group by its individual phenomena.
func ParseCondition(main string) Condition {
	switch main {
	case "Clear":
		return ConditionClear
	case "Clouds":
		return ConditionClouds
	case "Rain":
		return ConditionRain
	case "Snow":
		return ConditionSnow
	case "Thunderstorm":
		return ConditionThunderstorm
	case "Drizzle":
		return ConditionDrizzle
	case "Atmosphere", "Mist", "Smoke", "Haze", "Dust", "Fog", "Sand", "Ash", "Squall", "Tornado":
		return ConditionAtmosphere
	default:
		return ConditionOther
	}
}

// Icon returns the display icon name for the condition.
func (c Condition) Icon() string {
	switch c {
	case ConditionClear:
		return "sunny"
	case ConditionClouds:
		return "cloudy"
	case ConditionRain, ConditionDrizzle:
		return "rainy"
	case ConditionSnow:
		return "snow"
	case ConditionThunderstorm:
		return "thunderstorm"
	case ConditionAtmosphere:
		return "cloudy-outline"
	default:
		return "partly-sunny"
	}
}

// Weather is a coded condition plus the provider's free-text description.
type Weather struct {
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
}

// Sample is one provider-reported 3-hour forecast slot.
// Providers carry a missing temperature as NaN.
type Sample struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperatureC"`
	TempMin     float64   `json:"tempMinC"`
	TempMax     float64   `json:"tempMaxC"`
	Weather     Weather   `json:"weather"`
}

// Valid reports whether the sample carries every field the aggregator needs.
func (s Sample) Valid() bool {
	if s.Timestamp.IsZero() {
		return false
	}
	return !math.IsNaN(s.Temperature) && !math.IsNaN(s.TempMin) && !math.IsNaN(s.TempMax)
}

// DailySummary condenses all samples of one local calendar day.
type DailySummary struct {
	Date      DayKey    `json:"date"`
	Timestamp time.Time `json:"timestamp"` // representative; used for date display only
	MinTemp   float64   `json:"minTempC"`
	MaxTemp   float64   `json:"maxTempC"`
	Weather   Weather   `json:"weather"`
}

// Coordinates are WGS84 degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label is the display pair produced by reverse geocoding.
// Secondary may be empty.
type Label struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// HourlyView is a single entry of the "today" strip.
type HourlyView struct {
	Timestamp   time.Time `json:"timestamp"`
	Hour        string    `json:"hour"` // local "HH:00"
	Temperature float64   `json:"temperatureC"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// DailyView is a single entry of the "upcoming days" list.
type DailyView struct {
	Date        string    `json:"date"`
	Weekday     string    `json:"weekday"` // short English weekday
	MinTemp     float64   `json:"minTempC"`
	MaxTemp     float64   `json:"maxTempC"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// Display is the complete output of one pipeline run.
type Display struct {
	RunID       string       `json:"runId"`
	Provider    string       `json:"provider"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Coordinates Coordinates  `json:"coordinates"`
	Label       Label        `json:"label"`
	Today       []HourlyView `json:"today"`
	Daily       []DailyView  `json:"daily"`
}

// NewHourlyViews renders today-window samples in loc.
func NewHourlyViews(samples []Sample, loc *time.Location) []HourlyView {
	loc = orLocal(loc)
	out := make([]HourlyView, 0, len(samples))
	for _, s := range samples {
		out = append(out, HourlyView{
			Timestamp:   s.Timestamp,
			Hour:        s.Timestamp.In(loc).Format("15") + ":00",
			Temperature: s.Temperature,
			Condition:   s.Weather.Condition,
			Description: s.Weather.Description,
			Icon:        s.Weather.Condition.Icon(),
		})
	}
	return out
}

// NewDailyViews renders daily summaries in loc.
func NewDailyViews(days []DailySummary, loc *time.Location) []DailyView {
	loc = orLocal(loc)
	out := make([]DailyView, 0, len(days))
	for _, d := range days {
		out = append(out, DailyView{
			Date:        d.Date.String(),
			Weekday:     d.Timestamp.In(loc).Format("Mon"),
			MinTemp:     d.MinTemp,
			MaxTemp:     d.MaxTemp,
			Condition:   d.Weather.Condition,
			Description: d.Weather.Description,
			Icon:        d.Weather.Condition.Icon(),
		})
	}
	return out
}
