package attendance

import (
	"time"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/liveness"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/validator"
)

// CheckRequest is a check-in or check-out attempt: the captured descriptor,
// the claimed location, and optionally a completed liveness session.
// FaceConfidence is the client-reported capture quality; it is a hint only
// and never drives the accept/reject decision.
type CheckRequest struct {
	EmployeeID        string          `json:"employee_id"`
	FaceDescriptor    []float64       `json:"face_descriptor"`
	FaceConfidence    float64         `json:"face_confidence"`
	Location          *geofence.Point `json:"location,omitempty"`
	LivenessSessionID *string         `json:"liveness_session_id,omitempty"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDescriptor(r.FaceDescriptor) {
		errs = append(errs, validator.ValidationError{
			Field:   "face_descriptor",
			Message: "face_descriptor must contain exactly 128 values",
		})
	}

	if !validator.IsValidConfidence(r.FaceConfidence) {
		errs = append(errs, validator.ValidationError{
			Field:   "face_confidence",
			Message: "face_confidence must be between 0 and 1",
		})
	}

	if r.Location != nil {
		if !validator.IsValidLatitude(r.Location.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "location.latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(r.Location.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "location.longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{StatusPresent, StatusLate, StatusIncomplete, StatusAbsent}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, late, incomplete, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type FaceVerification struct {
	Confidence   float64  `json:"confidence"`
	QualityScore *float64 `json:"quality_score,omitempty"`
}

type AttendanceResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	Date          string   `json:"date"`
	CheckInTime   *string  `json:"check_in_time"`
	CheckOutTime  *string  `json:"check_out_time,omitempty"`
	Status        string   `json:"status"`
	LateMinutes   *int     `json:"late_minutes,omitempty"`
	TotalHours    *float64 `json:"total_hours,omitempty"`
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`
}

type CheckResponse struct {
	Success          bool                `json:"success"`
	Attendance       *AttendanceResponse `json:"attendance,omitempty"`
	FaceVerification *FaceVerification   `json:"face_verification,omitempty"`
	Liveness         *LivenessSummary    `json:"liveness,omitempty"`
	Reasons          []string            `json:"reasons,omitempty"`
}

type LivenessSummary struct {
	IsLive bool                  `json:"is_live"`
	Score  float64               `json:"score"`
	State  liveness.SessionState `json:"state"`
}

type StatusResponse struct {
	CheckedIn    bool    `json:"checked_in"`
	CheckedOut   bool    `json:"checked_out"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       string  `json:"status"`
	TotalHours   float64 `json:"total_hours"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ParseDay truncates a timestamp to its working date in the given location.
func ParseDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
