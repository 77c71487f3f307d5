package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/attendance"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, date, check_in_time, check_out_time,
	check_in_confidence, check_out_confidence,
	check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
	status, late_minutes, total_hours, overtime_hours, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.CheckInTime, &a.CheckOutTime,
		&a.CheckInConfidence, &a.CheckOutConfidence,
		&a.CheckInLatitude, &a.CheckInLongitude, &a.CheckOutLatitude, &a.CheckOutLongitude,
		&a.Status, &a.LateMinutes, &a.TotalHours, &a.OvertimeHours, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.Repository. The attendances table carries a
// unique constraint on (employee_id, date); a violation means another
// request already checked this employee in today.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in_time, check_in_confidence,
			check_in_latitude, check_in_longitude, status, late_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.CheckInTime, record.CheckInConfidence,
		record.CheckInLatitude, record.CheckInLongitude, record.Status, record.LateMinutes,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return created, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`

	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &record, nil
}

// Update implements attendance.Repository. Optimistic: the row must still
// carry the updated_at the caller loaded.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out_time = $1, check_out_confidence = $2,
			check_out_latitude = $3, check_out_longitude = $4,
			status = $5, total_hours = $6, overtime_hours = $7, updated_at = NOW()
		WHERE id = $8 AND updated_at = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.CheckOutTime, record.CheckOutConfidence,
		record.CheckOutLatitude, record.CheckOutLongitude,
		record.Status, record.TotalHours, record.OvertimeHours,
		record.ID, record.UpdatedAt,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrPersistenceConflict
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

// History implements attendance.Repository.
func (r *attendanceRepositoryImpl) History(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"employee_id = $1"}
	args := []interface{}{employeeID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance history: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM attendances WHERE %s ORDER BY date DESC LIMIT $%d OFFSET $%d`,
		attendanceColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Summarize implements attendance.Repository.
func (r *attendanceRepositoryImpl) Summarize(ctx context.Context, employeeID string, from, to time.Time) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'incomplete'),
			COALESCE(SUM(total_hours), 0),
			COALESCE(SUM(overtime_hours), 0)
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`

	var summary attendance.Summary
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&summary.TotalDays, &summary.PresentDays, &summary.LateDays,
		&summary.IncompleteDays, &summary.TotalHours, &summary.TotalOvertimeHours,
	)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	return summary, nil
}

// ListOpenBefore implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListOpenBefore(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE check_in_time IS NOT NULL AND check_out_time IS NULL AND date <= $1`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
