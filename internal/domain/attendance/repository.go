package attendance

import (
	"context"
	"time"
)

// Repository defines data access methods for attendance records. The
// backing store must enforce a unique constraint on (employee_id, date) so
// duplicate check-ins lose the race at the database, not just in memory.
type Repository interface {
	// Create inserts the day's record with its check-in fields set.
	// Returns ErrAlreadyCheckedIn when a record for (employee_id, date)
	// already exists.
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for the day
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update persists check-out fields and derived hours.
	// Returns ErrPersistenceConflict when the row changed underneath.
	Update(ctx context.Context, record Attendance) error

	// History retrieves records for an employee with filters and pagination
	History(ctx context.Context, employeeID string, filter HistoryFilter) ([]Attendance, int64, error)

	// Summarize aggregates outcomes for an employee over a date range
	Summarize(ctx context.Context, employeeID string, from, to time.Time) (Summary, error)

	// ListOpenBefore returns records with a check-in but no check-out for
	// the given date, used by the end-of-day sweep
	ListOpenBefore(ctx context.Context, date time.Time) ([]Attendance, error)
}
