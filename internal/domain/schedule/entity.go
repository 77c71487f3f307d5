package schedule

import (
	"time"
)

// WorkSchedule holds the expected working window for one employee on one
// date, plus the thresholds the attendance rules apply.
type WorkSchedule struct {
	EmployeeID             string
	Date                   time.Time
	ExpectedStart          time.Time
	ExpectedEnd            time.Time
	LateThresholdMinutes   int
	OvertimeThresholdHours float64
	GracePeriodMinutes     int
}

// ExpectedDurationHours is the scheduled working duration.
func (s WorkSchedule) ExpectedDurationHours() float64 {
	return s.ExpectedEnd.Sub(s.ExpectedStart).Hours()
}

// LateDeadline is the last instant a check-in still counts as present.
func (s WorkSchedule) LateDeadline() time.Time {
	return s.ExpectedStart.Add(time.Duration(s.LateThresholdMinutes) * time.Minute)
}

// IncompleteDeadline is the instant past which an open record is swept to
// incomplete: expected end plus the grace window.
func (s WorkSchedule) IncompleteDeadline() time.Time {
	return s.ExpectedEnd.Add(time.Duration(s.GracePeriodMinutes) * time.Minute)
}
