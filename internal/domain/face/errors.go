package face

import "errors"

// Face domain errors
var (
	// Programmer/integration errors: never silently defaulted
	ErrDimensionMismatch = errors.New("descriptor dimension mismatch: expected 128 values")
	ErrInvalidThreshold  = errors.New("threshold must be between 0 and 1")

	// Enrollment errors
	ErrFaceAlreadyRegistered = errors.New("employee already has a registered face, use update instead")
	ErrFaceNotRegistered     = errors.New("employee has no registered face")

	// Batch errors
	ErrBatchTooLarge = errors.New("batch exceeds the maximum of 10 faces per request")
)
