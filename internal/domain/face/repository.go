package face

import (
	"context"
)

// TemplateRepository defines data access methods for enrolled face templates.
type TemplateRepository interface {
	// Create stores a new template for an employee
	Create(ctx context.Context, template Template) (Template, error)

	// GetByEmployeeID retrieves all templates enrolled for one employee.
	// An empty slice means the employee has no enrolled face.
	GetByEmployeeID(ctx context.Context, employeeID string) ([]Template, error)

	// GetAll retrieves every enrolled template, used for identification mode
	GetAll(ctx context.Context) ([]Template, error)

	// Replace atomically swaps the descriptor and metadata of the
	// employee's template
	Replace(ctx context.Context, template Template) (Template, error)

	// DeleteByEmployeeID removes all templates for an employee
	DeleteByEmployeeID(ctx context.Context, employeeID string) error

	// CountEnrolled returns the number of employees with at least one template
	CountEnrolled(ctx context.Context) (int64, error)
}

// VerificationLogRepository records verification outcomes for auditing.
// Writes are best-effort and must never block or fail a decision.
type VerificationLogRepository interface {
	Create(ctx context.Context, log VerificationLog) error
	CountByAction(ctx context.Context, actions []string, sinceDays int) (map[string]int64, error)
	AverageConfidence(ctx context.Context, sinceDays int) (float64, error)
}
