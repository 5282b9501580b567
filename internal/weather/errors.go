package weather

import "errors"

var (
	// ErrInvalidCoordinate rejects out-of-range or malformed lat/lon input.
	ErrInvalidCoordinate = errors.New("coordinate out of range")

	// ErrNotConfigured means the upstream credential is missing; operators
	// must fix the deployment, retrying will not help.
	ErrNotConfigured = errors.New("weather provider not configured")

	// ErrUpstream covers any failure talking to the weather provider:
	// non-2xx responses and transport errors alike. Detail is logged
	// server-side, never exposed to callers.
	ErrUpstream = errors.New("weather provider unavailable")

	// ErrNotFound is returned when no record exists for a coordinate.
	ErrNotFound = errors.New("no weather records for coordinate")
)
