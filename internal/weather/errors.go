package weather

import "errors"

var (
	// ErrPermissionDenied is returned when location access was refused.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrLocationUnavailable is returned when no coordinates could be obtained.
	ErrLocationUnavailable = errors.New("location unavailable")
	// ErrGeocode marks a failed or empty reverse lookup. It is never fatal.
	ErrGeocode = errors.New("reverse geocoding failed")
	// ErrFetch marks a failed forecast request or a non-success response.
	ErrFetch = errors.New("forecast fetch failed")
)
