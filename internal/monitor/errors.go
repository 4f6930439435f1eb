package monitor

import "errors"

// Sentinel errors returned by the Monitor.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAdminRequired is returned when the admin client is nil.
	ErrAdminRequired = errors.New("kafka admin client is required")

	// ErrAlreadyStarted is returned when Start is called on a monitor that
	// is already running or has been shut down.
	ErrAlreadyStarted = errors.New("monitor already started")
)
