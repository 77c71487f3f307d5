package postgresql

import (
	"context"
	"fmt"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/database"
)

type faceTemplateRepositoryImpl struct {
	db *database.DB
}

func NewFaceTemplateRepository(db *database.DB) face.TemplateRepository {
	return &faceTemplateRepositoryImpl{db: db}
}

// Create implements face.TemplateRepository.
func (r *faceTemplateRepositoryImpl) Create(ctx context.Context, template face.Template) (face.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO face_templates (
			employee_id, descriptor, algorithm, model_version,
			confidence_at_enrollment, quality_score
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, descriptor, algorithm, model_version,
			confidence_at_enrollment, quality_score, registered_at, updated_at
	`

	var created face.Template
	err := q.QueryRow(ctx, query,
		template.EmployeeID, template.Descriptor, template.Algorithm, template.ModelVersion,
		template.ConfidenceAtEnrollment, template.QualityScore,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Descriptor, &created.Algorithm,
		&created.ModelVersion, &created.ConfidenceAtEnrollment, &created.QualityScore,
		&created.RegisteredAt, &created.UpdatedAt,
	)
	if err != nil {
		return face.Template{}, fmt.Errorf("failed to insert face template: %w", err)
	}

	return created, nil
}

// GetByEmployeeID implements face.TemplateRepository.
func (r *faceTemplateRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]face.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, descriptor, algorithm, model_version,
			confidence_at_enrollment, quality_score, registered_at, updated_at
		FROM face_templates
		WHERE employee_id = $1
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []face.Template
	for rows.Next() {
		var t face.Template
		err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.Descriptor, &t.Algorithm, &t.ModelVersion,
			&t.ConfidenceAtEnrollment, &t.QualityScore, &t.RegisteredAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// GetAll implements face.TemplateRepository.
func (r *faceTemplateRepositoryImpl) GetAll(ctx context.Context) ([]face.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, descriptor, algorithm, model_version,
			confidence_at_enrollment, quality_score, registered_at, updated_at
		FROM face_templates
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []face.Template
	for rows.Next() {
		var t face.Template
		err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.Descriptor, &t.Algorithm, &t.ModelVersion,
			&t.ConfidenceAtEnrollment, &t.QualityScore, &t.RegisteredAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// Replace implements face.TemplateRepository. Runs in a transaction so a
// failed insert never leaves the employee without a template.
func (r *faceTemplateRepositoryImpl) Replace(ctx context.Context, template face.Template) (face.Template, error) {
	var replaced face.Template
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		if _, err := q.Exec(txCtx, `DELETE FROM face_templates WHERE employee_id = $1`, template.EmployeeID); err != nil {
			return fmt.Errorf("failed to delete previous templates: %w", err)
		}

		created, err := r.Create(txCtx, template)
		if err != nil {
			return err
		}
		replaced = created
		return nil
	})
	if err != nil {
		return face.Template{}, err
	}

	return replaced, nil
}

// DeleteByEmployeeID implements face.TemplateRepository.
func (r *faceTemplateRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM face_templates WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete face templates: %w", err)
	}

	return nil
}

// CountEnrolled implements face.TemplateRepository.
func (r *faceTemplateRepositoryImpl) CountEnrolled(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(DISTINCT employee_id) FROM face_templates`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count enrolled employees: %w", err)
	}

	return count, nil
}
