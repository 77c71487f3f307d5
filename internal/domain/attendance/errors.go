package attendance

import "errors"

// Attendance domain errors. These are business-rule violations, distinct
// from verification failures, and safe to report verbatim to the end user.
var (
	ErrAlreadyCheckedIn      = errors.New("you have already checked in today")
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")

	ErrAttendanceNotFound = errors.New("attendance record not found")

	// Transient infrastructure errors: safe to retry the whole call
	ErrPersistenceConflict = errors.New("attendance record was modified concurrently")
)
