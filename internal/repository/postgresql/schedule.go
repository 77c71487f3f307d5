package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/schedule"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.Repository {
	return &scheduleRepositoryImpl{db: db}
}

// GetSchedule implements schedule.Repository. Schedules are stored as
// daily rows; the start and end columns are full timestamps for the date.
func (r *scheduleRepositoryImpl) GetSchedule(ctx context.Context, employeeID string, date time.Time) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, date, expected_start, expected_end,
			late_threshold_minutes, overtime_threshold_hours, grace_period_minutes
		FROM work_schedules
		WHERE employee_id = $1 AND date = $2
	`

	var s schedule.WorkSchedule
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&s.EmployeeID, &s.Date, &s.ExpectedStart, &s.ExpectedEnd,
		&s.LateThresholdMinutes, &s.OvertimeThresholdHours, &s.GracePeriodMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrNoScheduleFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	return s, nil
}
