package employee

import (
	"context"
)

// Repository defines data access methods for employee identities.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	Count(ctx context.Context) (int64, error)
}
