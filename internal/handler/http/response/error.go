package response

import (
	"errors"
	"net/http"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/attendance"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/auth"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/employee"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/liveness"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/schedule"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Face domain errors
	case errors.Is(err, face.ErrFaceAlreadyRegistered):
		Conflict(w, "Face already registered for this employee")
	case errors.Is(err, face.ErrFaceNotRegistered):
		NotFound(w, "No face registered for this employee")
	case errors.Is(err, face.ErrDimensionMismatch):
		BadRequest(w, "Face descriptor must contain exactly 128 values", nil)
	case errors.Is(err, face.ErrInvalidThreshold):
		BadRequest(w, "Threshold must be between 0 and 1", nil)
	case errors.Is(err, face.ErrBatchTooLarge):
		BadRequest(w, "Too many faces in one batch request", nil)

	// Liveness domain errors
	case errors.Is(err, liveness.ErrSessionNotFound):
		NotFound(w, "Liveness session not found")
	case errors.Is(err, liveness.ErrUnsupportedGesture):
		BadRequest(w, "Unsupported gesture type", nil)
	case errors.Is(err, liveness.ErrInvalidGestureCount),
		errors.Is(err, liveness.ErrInvalidTimeout):
		BadRequest(w, err.Error(), nil)

	// Geofence domain errors
	case errors.Is(err, geofence.ErrZoneNotFound):
		NotFound(w, "Geofence zone not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrPersistenceConflict):
		Conflict(w, "Attendance record was modified concurrently, retry the request")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrNoScheduleFound):
		NotFound(w, "No schedule found for this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
