package schedule

import "errors"

// Schedule domain errors
var (
	ErrNoScheduleFound = errors.New("no schedule found for this date")
)
