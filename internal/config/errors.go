package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use errors.Is.
// An unacceptable start URL is reported with wiki.ErrInvalidStartURL instead.
var (
	// ErrNoStartURL is returned when no starting article was given.
	ErrNoStartURL = errors.New("no starting URL specified")

	// ErrInvalidMaxHops is returned when the hop budget is not positive.
	ErrInvalidMaxHops = errors.New("invalid max hops: must be positive")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRetries is returned when the retry count is negative.
	ErrInvalidRetries = errors.New("invalid retries: must be non-negative")

	// ErrInvalidDelay is returned when the politeness delay is negative.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrInvalidFormat is returned for an unknown report format.
	ErrInvalidFormat = errors.New("invalid report format: must be text, json or markdown")

	// ErrInvalidOrigin is returned when the site origin is not an http(s) URL.
	ErrInvalidOrigin = errors.New("invalid origin: must start with http:// or https://")
)
