package weather

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayKey identifies a local calendar date independent of time of day.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayKeyOf returns the calendar date of t as observed in loc.
// All day grouping goes through here; a nil loc means time.Local.
func DayKeyOf(t time.Time, loc *time.Location) DayKey {
	y, m, d := t.In(orLocal(loc)).Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// String renders the key as YYYY-MM-DD.
func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// MarshalJSON encodes the key as its YYYY-MM-DD string.
func (k DayKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
