package verification

import (
	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/liveness"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/verification"
)

type OrchestratorImpl struct {
	matcher   face.Matcher
	geofencer geofence.Service
}

func NewOrchestrator(matcher face.Matcher, geofencer geofence.Service) verification.Orchestrator {
	return &OrchestratorImpl{
		matcher:   matcher,
		geofencer: geofencer,
	}
}

// Verify implements verification.Orchestrator. Checks run in a fixed
// order: face match, then geofence, then liveness. A failed check stops
// the sequence unless the attempt is diagnostic, in which case every
// applicable check runs and all reasons are collected.
func (o *OrchestratorImpl) Verify(attempt verification.Attempt, templates []face.Template, zones []geofence.Zone) (verification.Decision, error) {
	threshold := attempt.Threshold
	if threshold == 0 {
		threshold = face.DefaultThreshold
	}

	decision := verification.Decision{}

	match, err := o.matcher.Match(attempt.QueryDescriptor, templates, threshold)
	if err != nil {
		return verification.Decision{}, err
	}
	decision.Face = match
	if !match.Matched {
		decision.Reasons = append(decision.Reasons, verification.ReasonFaceMismatch)
		if !attempt.Diagnostic {
			return decision, nil
		}
	}

	// An empty zone set means no geofence is configured for this
	// deployment; the location check is skipped, not failed.
	if attempt.Location != nil && len(zones) > 0 {
		result := o.geofencer.Validate(*attempt.Location, zones)
		decision.Geofence = &result
		if !result.Within {
			decision.Reasons = append(decision.Reasons, verification.ReasonLocationOutOfBounds)
			if !attempt.Diagnostic {
				return decision, nil
			}
		}
	}

	if attempt.LivenessRequired {
		decision.Liveness = attempt.LivenessSession
		if reason := livenessReason(attempt.LivenessSession); reason != "" {
			decision.Reasons = append(decision.Reasons, reason)
			if !attempt.Diagnostic {
				return decision, nil
			}
		}
	}

	decision.Accepted = len(decision.Reasons) == 0
	return decision, nil
}

// livenessReason maps a session outcome to a rejection reason, or returns
// the empty string when the session proves liveness.
func livenessReason(session *liveness.Session) string {
	if session == nil {
		return verification.ReasonLivenessFailed
	}

	switch session.State {
	case liveness.StateSucceeded:
		return ""
	case liveness.StateTimedOut:
		return verification.ReasonLivenessTimeout
	case liveness.StateFailed:
		if session.CompletedCount() > 0 {
			return verification.ReasonLivenessInsufficient
		}
		return verification.ReasonLivenessFailed
	default:
		// Pending or active sessions have not proven liveness yet.
		return verification.ReasonLivenessFailed
	}
}
