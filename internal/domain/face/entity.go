package face

import (
	"time"
)

// Template is an enrolled face descriptor for an employee. A template is
// immutable once created; updates replace the descriptor and metadata
// atomically.
type Template struct {
	ID                     string
	EmployeeID             string
	Descriptor             []float64
	Algorithm              string
	ModelVersion           string
	ConfidenceAtEnrollment float64
	QualityScore           float64
	RegisteredAt           time.Time
	UpdatedAt              time.Time
}

// MatchResult is the outcome of comparing a query descriptor against a set
// of enrolled templates.
type MatchResult struct {
	Matched        bool
	BestTemplateID string
	EmployeeID     string
	Confidence     float64
	Distance       float64
}

// Verification log actions
const (
	ActionRegister      = "register"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionVerifySuccess = "verify_success"
	ActionVerifyFailed  = "verify_failed"
)

// VerificationLog is one audit row recording a verification outcome.
type VerificationLog struct {
	ID         string
	Action     string
	EmployeeID *string
	Confidence float64
	Reasons    []string
	CreatedAt  time.Time
}

// Statistics summarizes enrollment coverage and recent verification outcomes.
type Statistics struct {
	TotalEmployees          int64
	EnrolledEmployees       int64
	EnrollmentPercentage    float64
	TotalVerifications      int64
	SuccessfulVerifications int64
	RecognitionAccuracy     float64
	AverageConfidence       float64
}
