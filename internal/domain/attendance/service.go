package attendance

import (
	"context"
	"time"
)

// Service defines business logic for verified check-in and check-out
type Service interface {
	// CheckIn verifies the attempt (face, liveness, geofence) and creates
	// the day's record. A verification rejection never creates a record.
	CheckIn(ctx context.Context, req CheckRequest) (CheckResponse, error)

	// CheckOut verifies the attempt and closes the day's record, computing
	// total and overtime hours
	CheckOut(ctx context.Context, req CheckRequest) (CheckResponse, error)

	// GetStatus reports today's attendance state for an employee
	GetStatus(ctx context.Context, employeeID string) (StatusResponse, error)

	// GetHistory retrieves attendance records with filters and pagination
	GetHistory(ctx context.Context, employeeID string, filter HistoryFilter) (ListAttendanceResponse, error)

	// GetSummary aggregates attendance outcomes over a date range
	GetSummary(ctx context.Context, employeeID string, from, to time.Time) (Summary, error)

	// MarkIncomplete sweeps records for the given date that were checked in
	// but never checked out past the schedule's incomplete deadline.
	// Invocation is left to an external batch job.
	MarkIncomplete(ctx context.Context, date time.Time) (int, error)
}
