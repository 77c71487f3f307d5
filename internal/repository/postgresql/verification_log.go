package postgresql

import (
	"context"
	"fmt"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/database"
)

type verificationLogRepositoryImpl struct {
	db *database.DB
}

func NewVerificationLogRepository(db *database.DB) face.VerificationLogRepository {
	return &verificationLogRepositoryImpl{db: db}
}

// Create implements face.VerificationLogRepository.
func (r *verificationLogRepositoryImpl) Create(ctx context.Context, log face.VerificationLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO face_verification_logs (id, action, employee_id, confidence, reasons, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := q.Exec(ctx, query,
		log.ID, log.Action, log.EmployeeID, log.Confidence, log.Reasons, log.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert verification log: %w", err)
	}

	return nil
}

// CountByAction implements face.VerificationLogRepository.
func (r *verificationLogRepositoryImpl) CountByAction(ctx context.Context, actions []string, sinceDays int) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT action, COUNT(*)
		FROM face_verification_logs
		WHERE action = ANY($1) AND created_at >= NOW() - make_interval(days => $2)
		GROUP BY action
	`

	rows, err := q.Query(ctx, query, actions, sinceDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64, len(actions))
	for rows.Next() {
		var action string
		var count int64
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		counts[action] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// AverageConfidence implements face.VerificationLogRepository.
func (r *verificationLogRepositoryImpl) AverageConfidence(ctx context.Context, sinceDays int) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(AVG(confidence), 0)
		FROM face_verification_logs
		WHERE action IN ('verify_success', 'verify_failed')
			AND created_at >= NOW() - make_interval(days => $1)
	`

	var avg float64
	if err := q.QueryRow(ctx, query, sinceDays).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to average confidence: %w", err)
	}

	return avg, nil
}
