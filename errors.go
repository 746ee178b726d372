package dispatchz

import "errors"

// Configuration errors returned at construction.
var (
	ErrNilConsumer            = errors.New("dispatchz: consumer must not be nil")
	ErrInvalidCapacity        = errors.New("dispatchz: capacity must be > 0")
	ErrInvalidWarningInterval = errors.New("dispatchz: warning interval must be >= 0")
)
