package liveness

import "errors"

// Liveness domain errors
var (
	ErrSessionNotFound     = errors.New("liveness session not found")
	ErrUnsupportedGesture  = errors.New("unsupported gesture type")
	ErrInvalidGestureCount = errors.New("required gesture count must be between 1 and the number of supported gestures")
	ErrInvalidTimeout      = errors.New("session timeout must be positive")
)
