package face

import (
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/validator"
)

// MaxBatchSize bounds the number of descriptors accepted in one batch
// verify call to cap per-request compute cost.
const MaxBatchSize = 10

// DefaultThreshold is the domain-standard similarity threshold.
const DefaultThreshold = 0.6

type RegisterFaceRequest struct {
	EmployeeID   string    `json:"employee_id"`
	Descriptor   []float64 `json:"descriptor"`
	Confidence   float64   `json:"confidence"`
	Algorithm    string    `json:"algorithm"`
	ModelVersion string    `json:"model_version"`
}

func (r *RegisterFaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDescriptor(r.Descriptor) {
		errs = append(errs, validator.ValidationError{
			Field:   "descriptor",
			Message: "descriptor must contain exactly 128 values",
		})
	}

	if !validator.IsValidConfidence(r.Confidence) {
		errs = append(errs, validator.ValidationError{
			Field:   "confidence",
			Message: "confidence must be between 0 and 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateFaceRequest struct {
	EmployeeID   string    `json:"employee_id"`
	Descriptor   []float64 `json:"descriptor"`
	Confidence   float64   `json:"confidence"`
	Algorithm    string    `json:"algorithm"`
	ModelVersion string    `json:"model_version"`
}

func (r *UpdateFaceRequest) Validate() error {
	reg := RegisterFaceRequest{
		EmployeeID: r.EmployeeID,
		Descriptor: r.Descriptor,
		Confidence: r.Confidence,
	}
	return reg.Validate()
}

type VerifyFaceRequest struct {
	Descriptor []float64 `json:"descriptor"`
	// EmployeeID is optional: absent means "identify against all enrolled
	// templates", present means "verify against one employee".
	EmployeeID *string  `json:"employee_id,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"`
}

func (r *VerifyFaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidDescriptor(r.Descriptor) {
		errs = append(errs, validator.ValidationError{
			Field:   "descriptor",
			Message: "descriptor must contain exactly 128 values",
		})
	}

	if r.Threshold != nil && !validator.IsValidThreshold(*r.Threshold) {
		errs = append(errs, validator.ValidationError{
			Field:   "threshold",
			Message: "threshold must be between 0 and 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BatchVerifyRequest struct {
	Faces     [][]float64 `json:"faces"`
	Threshold *float64    `json:"threshold,omitempty"`
}

func (r *BatchVerifyRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Faces) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "faces",
			Message: "faces is required",
		})
	}

	for i, descriptor := range r.Faces {
		if !validator.IsValidDescriptor(descriptor) {
			errs = append(errs, validator.ValidationError{
				Field:   "faces[" + validator.Itoa(i) + "]",
				Message: "descriptor must contain exactly 128 values",
			})
		}
	}

	if r.Threshold != nil && !validator.IsValidThreshold(*r.Threshold) {
		errs = append(errs, validator.ValidationError{
			Field:   "threshold",
			Message: "threshold must be between 0 and 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegisterFaceResponse struct {
	EmployeeID   string  `json:"employee_id"`
	TemplateID   string  `json:"template_id"`
	Confidence   float64 `json:"confidence"`
	QualityScore float64 `json:"quality_score"`
}

type VerifyFaceResponse struct {
	Success           bool    `json:"success"`
	Confidence        float64 `json:"confidence"`
	Distance          float64 `json:"distance"`
	MatchedEmployeeID *string `json:"matched_employee_id,omitempty"`
	BestTemplateID    *string `json:"best_template_id,omitempty"`
}

type BatchVerifyEntry struct {
	Index             int     `json:"index"`
	Success           bool    `json:"success"`
	Confidence        float64 `json:"confidence"`
	MatchedEmployeeID *string `json:"matched_employee_id,omitempty"`
}

type BatchVerifyResponse struct {
	Results []BatchVerifyEntry `json:"results"`
}
