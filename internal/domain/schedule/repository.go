package schedule

import (
	"context"
	"time"
)

// Repository provides the work schedule for an employee on a date.
// Returns ErrNoScheduleFound when the employee has no schedule that day.
type Repository interface {
	GetSchedule(ctx context.Context, employeeID string, date time.Time) (WorkSchedule, error)
}
