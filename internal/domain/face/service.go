package face

import (
	"context"
)

// Service defines business logic for face enrollment and matching
type Service interface {
	// RegisterFace enrolls a descriptor for an employee
	RegisterFace(ctx context.Context, req RegisterFaceRequest) (RegisterFaceResponse, error)

	// UpdateFace atomically replaces the employee's enrolled descriptor
	UpdateFace(ctx context.Context, req UpdateFaceRequest) (RegisterFaceResponse, error)

	// DeleteFace removes the employee's enrolled templates
	DeleteFace(ctx context.Context, employeeID string) error

	// VerifyFace matches a query descriptor against one employee's
	// templates, or against all enrolled templates when no employee is named
	VerifyFace(ctx context.Context, req VerifyFaceRequest) (VerifyFaceResponse, error)

	// BatchVerify matches up to MaxBatchSize descriptors in one call
	BatchVerify(ctx context.Context, req BatchVerifyRequest) (BatchVerifyResponse, error)

	// GetStatistics reports enrollment coverage and recognition accuracy
	GetStatistics(ctx context.Context) (Statistics, error)
}

// Matcher is the pure descriptor comparison: query against candidate
// templates at a threshold. Implementations hold no state and are safe for
// concurrent use.
type Matcher interface {
	Match(query []float64, candidates []Template, threshold float64) (MatchResult, error)
}
