package verification

import (
	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
)

// Orchestrator composes the face matcher, liveness outcome, and geofence
// check into one verification decision. Verify is a pure function over its
// inputs: no I/O, no mutation, identical inputs produce identical
// decisions.
type Orchestrator interface {
	Verify(attempt Attempt, templates []face.Template, zones []geofence.Zone) (Decision, error)
}
