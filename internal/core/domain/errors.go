package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidInput is returned when a route request has fewer than two waypoints
	// or a waypoint with non-finite or out-of-range coordinates.
	ErrInvalidInput = zerr.New("invalid route request")

	// ErrTierUnavailable is returned by a routing tier that could not produce a route.
	ErrTierUnavailable = zerr.New("routing tier unavailable")

	// ErrNoRouteFound is returned when not even the direct line could be computed.
	ErrNoRouteFound = zerr.New("no route found")

	// ErrLockDataUnavailable is returned when the lock directory cannot be queried.
	ErrLockDataUnavailable = zerr.New("lock data unavailable")

	// ErrLockNotFound is returned when a lock id is not present in the lock directory.
	ErrLockNotFound = zerr.New("lock not found")

	// ErrInvalidTimeRange is returned when an opening-hours or break string is not HH:MM-HH:MM.
	ErrInvalidTimeRange = zerr.New("invalid time range, expected HH:MM-HH:MM")

	// ErrInvalidWeekday is returned when an opening-hours key is not one of mo..su.
	ErrInvalidWeekday = zerr.New("invalid weekday key")

	// ErrWaterwayFetchFailed is returned when no geodata endpoint returned waterway features.
	ErrWaterwayFetchFailed = zerr.New("failed to fetch waterway features")

	// ErrWaterwayParseFailed is returned when a geodata response cannot be decoded.
	ErrWaterwayParseFailed = zerr.New("failed to parse waterway features")

	// ErrPrimaryRouterRequestFailed is returned when the primary network router request fails.
	ErrPrimaryRouterRequestFailed = zerr.New("primary router request failed")

	// ErrPrimaryRouterNoRoute is returned when the primary network router answers without a route.
	ErrPrimaryRouterNoRoute = zerr.New("primary router returned no route")

	// ErrPrimaryRouterUnhealthy is returned when the primary router health check fails.
	ErrPrimaryRouterUnhealthy = zerr.New("primary router health check failed")

	// ErrGaugeRequestFailed is returned when the gauge service request fails.
	ErrGaugeRequestFailed = zerr.New("gauge request failed")

	// ErrFeatureCacheOpenFailed is returned when the persistent feature cache cannot be opened.
	ErrFeatureCacheOpenFailed = zerr.New("failed to open feature cache")

	// ErrFeatureCacheReadFailed is returned when a cached feature set cannot be read.
	ErrFeatureCacheReadFailed = zerr.New("failed to read feature cache")

	// ErrFeatureCacheWriteFailed is returned when a feature set cannot be written to the cache.
	ErrFeatureCacheWriteFailed = zerr.New("failed to write feature cache")

	// ErrLockFileReadFailed is returned when the lock directory file cannot be read.
	ErrLockFileReadFailed = zerr.New("failed to read lock file")

	// ErrLockFileParseFailed is returned when the lock directory file cannot be parsed.
	ErrLockFileParseFailed = zerr.New("failed to parse lock file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrServerFailed is returned when the HTTP server stops with an error.
	ErrServerFailed = zerr.New("http server failed")
)
