package weather

import (
	"fmt"
	"math"
	"time"
)

// TodayWindowSize is the number of 3-hour slots shown in the hourly strip (48h).
const TodayWindowSize = 16

// Local hours [middayFrom, middayTo] are considered representative of a day.
const (
	middayFrom = 11
	middayTo   = 13
)

// TodayWindow returns up to TodayWindowSize valid samples at or after now.
// Input must be ordered by timestamp.
func TodayWindow(samples []Sample, now time.Time) []Sample {
	out := make([]Sample, 0, TodayWindowSize)
	for _, s := range samples {
		if len(out) == TodayWindowSize {
			break
		}
		if !s.Valid() || s.Timestamp.Before(now) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// TodayPrefix returns the first TodayWindowSize valid samples regardless of
// now, trusting the provider's first entry to be the nearest future slot.
func TodayPrefix(samples []Sample) []Sample {
	out := make([]Sample, 0, TodayWindowSize)
	for _, s := range samples {
		if len(out) == TodayWindowSize {
			break
		}
		if s.Valid() {
			out = append(out, s)
		}
	}
	return out
}

// WindowPolicy selects how the today window is extracted.
type WindowPolicy string

const (
	PolicyNow    WindowPolicy = "now"
	PolicyPrefix WindowPolicy = "prefix"
)

// ParseWindowPolicy validates a configured policy name.
func ParseWindowPolicy(s string) (WindowPolicy, error) {
	switch WindowPolicy(s) {
	case PolicyNow, PolicyPrefix:
		return WindowPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown today window policy %q", s)
	}
}

// Extract applies the policy.
func (p WindowPolicy) Extract(samples []Sample, now time.Time) []Sample {
	if p == PolicyPrefix {
		return TodayPrefix(samples)
	}
	return TodayWindow(samples, now)
}

// dayAccumulator is the per-day fold state.
type dayAccumulator struct {
	summary DailySummary
}

func isMidday(t time.Time, loc *time.Location) bool {
	h := t.In(loc).Hour()
	return h >= middayFrom && h <= middayTo
}

// seedDay starts a new accumulator from the first sample of a day.
func seedDay(key DayKey, s Sample) dayAccumulator {
	return dayAccumulator{
		summary: DailySummary{
			Date:      key,
			Timestamp: s.Timestamp,
			MinTemp:   s.TempMin,
			MaxTemp:   s.TempMax,
			Weather:   s.Weather,
		},
	}
}

// step folds one more sample of the same day into acc and returns the result.
// A midday sample always takes over the condition; other samples never do.
func (acc dayAccumulator) step(s Sample, loc *time.Location) dayAccumulator {
	acc.summary.MinTemp = math.Min(acc.summary.MinTemp, s.TempMin)
	acc.summary.MaxTemp = math.Max(acc.summary.MaxTemp, s.TempMax)
	if isMidday(s.Timestamp, loc) {
		acc.summary.Weather = s.Weather
	}
	return acc
}

// DailySummaries folds samples into one summary per local calendar day,
// excluding the day containing now, in first-seen order.
// Invalid samples are skipped.
func DailySummaries(samples []Sample, now time.Time, loc *time.Location) []DailySummary {
	loc = orLocal(loc)
	today := DayKeyOf(now, loc)

	var (
		order []DayKey
		days  = make(map[DayKey]dayAccumulator)
	)

	for _, s := range samples {
		if !s.Valid() {
			continue
		}
		key := DayKeyOf(s.Timestamp, loc)
		if key == today {
			continue
		}

		acc, ok := days[key]
		if !ok {
			order = append(order, key)
			days[key] = seedDay(key, s)
			continue
		}
		days[key] = acc.step(s, loc)
	}

	out := make([]DailySummary, 0, len(order))
	for _, k := range order {
		out = append(out, days[k].summary)
	}
	return out
}

// SkippedSamples counts samples the aggregator would ignore as malformed.
func SkippedSamples(samples []Sample) int {
	n := 0
	for _, s := range samples {
		if !s.Valid() {
			n++
		}
	}
	return n
}
