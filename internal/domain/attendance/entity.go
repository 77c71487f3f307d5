package attendance

import (
	"time"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
)

// Status labels derived from the record lifecycle. A record is created on
// the first successful check-in of the day and never deleted by this core.
const (
	StatusPresent    = "present"
	StatusLate       = "late"
	StatusIncomplete = "incomplete"
	StatusAbsent     = "absent"
)

// Attendance is the per-(employee, date) record. At most one check-in and
// one check-out per day; check-out, when present, is strictly after
// check-in.
type Attendance struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	CheckInConfidence  *float64
	CheckOutConfidence *float64
	CheckInLatitude    *float64
	CheckInLongitude   *float64
	CheckOutLatitude   *float64
	CheckOutLongitude  *float64
	Status             string
	LateMinutes        *int
	TotalHours         *float64
	OvertimeHours      *float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CheckInLocation returns the recorded check-in point, if any.
func (a *Attendance) CheckInLocation() *geofence.Point {
	if a.CheckInLatitude == nil || a.CheckInLongitude == nil {
		return nil
	}
	return &geofence.Point{Latitude: *a.CheckInLatitude, Longitude: *a.CheckInLongitude}
}

// Summary aggregates attendance outcomes over a date range.
type Summary struct {
	TotalDays          int64   `json:"total_days"`
	PresentDays        int64   `json:"present_days"`
	LateDays           int64   `json:"late_days"`
	IncompleteDays     int64   `json:"incomplete_days"`
	TotalHours         float64 `json:"total_hours"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
}
