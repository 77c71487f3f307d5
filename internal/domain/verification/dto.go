package verification

import (
	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/liveness"
)

// Rejection reasons, reported in the order the checks run.
const (
	ReasonFaceMismatch         = "face_mismatch"
	ReasonLocationOutOfBounds  = "location_out_of_bounds"
	ReasonLivenessFailed       = "liveness_failed"
	ReasonLivenessTimeout      = "liveness_timeout"
	ReasonLivenessInsufficient = "liveness_insufficient_confidence"
)

// Attempt is one claimed check-in/check-out event, assembled by the caller
// from the request plus loaded collaborator state. ClaimedConfidence is the
// client-reported capture quality and never drives the decision.
type Attempt struct {
	EmployeeID        string
	QueryDescriptor   []float64
	ClaimedConfidence float64
	Location          *geofence.Point
	LivenessSession   *liveness.Session
	LivenessRequired  bool
	Threshold         float64

	// Diagnostic requests all three checks regardless of early failures,
	// so clients can see every reason at once.
	Diagnostic bool
}

// Decision is the orchestrator's verdict. Rejections carry one reason per
// failed check; Accepted is true only when every applicable check passed.
type Decision struct {
	Accepted bool
	Reasons  []string
	Face     face.MatchResult
	Geofence *geofence.Result
	Liveness *liveness.Session
}
