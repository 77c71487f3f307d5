package liveness

import (
	"time"

	"github.com/omanjaya/attendancedev-sub009/internal/pkg/validator"
)

// Engine policy defaults. These are configurable policy knobs rather than
// calibrated security parameters.
const (
	DefaultRequiredGestures    = 2
	DefaultTimeoutMs           = 30000
	DefaultAcceptanceThreshold = 0.7
	DefaultBonusThreshold      = 0.8
	DefaultBonusPoints         = 5.0
	DefaultAttemptCeiling      = 15
	DefaultAttemptPenalty      = 10.0
)

// StartSessionRequest overrides the engine policy for one session. Zero
// values fall back to the policy; out-of-range values are rejected with
// ErrInvalidGestureCount / ErrInvalidTimeout.
type StartSessionRequest struct {
	RequiredGestures int   `json:"required_gestures"`
	TimeoutMs        int64 `json:"timeout_ms"`
}

// Signal is one per-frame gesture detection event. The engine is agnostic
// to how detected/confidence are produced; it only aggregates them.
type Signal struct {
	Gesture    GestureType `json:"gesture_type"`
	Detected   bool        `json:"detected"`
	Confidence float64     `json:"confidence"`
	Timestamp  time.Time   `json:"timestamp"`
}

func (s *Signal) Validate() error {
	var errs validator.ValidationErrors

	supported := false
	for _, g := range SupportedGestures {
		if s.Gesture == g {
			supported = true
			break
		}
	}
	if !supported {
		errs = append(errs, validator.ValidationError{
			Field:   "gesture_type",
			Message: "gesture_type must be one of blink, smile, turn_head, nod, open_mouth",
		})
	}

	if !validator.IsValidConfidence(s.Confidence) {
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

// SessionUpdate is the snapshot returned after submitting a signal.
type SessionUpdate struct {
	SessionID      string          `json:"session_id"`
	State          SessionState    `json:"state"`
	CompletedCount int             `json:"completed_count"`
	RequiredCount  int             `json:"required_count"`
	OverallScore   float64         `json:"overall_score"`
	Results        []GestureResult `json:"results"`
}

type SessionResponse struct {
	SessionID        string        `json:"session_id"`
	State            SessionState  `json:"state"`
	SelectedGestures []GestureType `json:"selected_gestures"`
	RequiredCount    int           `json:"required_count"`
	TimeoutMs        int64         `json:"timeout_ms"`
	IsLive           bool          `json:"is_live"`
	Score            float64       `json:"score"`
}
