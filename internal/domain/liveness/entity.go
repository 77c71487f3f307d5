package liveness

import (
	"time"
)

// GestureType identifies one liveness challenge gesture.
type GestureType string

const (
	GestureBlink     GestureType = "blink"
	GestureSmile     GestureType = "smile"
	GestureTurnHead  GestureType = "turn_head"
	GestureNod       GestureType = "nod"
	GestureOpenMouth GestureType = "open_mouth"
)

// SupportedGestures lists every gesture the engine can challenge with.
var SupportedGestures = []GestureType{
	GestureBlink,
	GestureSmile,
	GestureTurnHead,
	GestureNod,
	GestureOpenMouth,
}

// SessionState is the lifecycle state of one liveness session.
// Pending -> Active -> {Succeeded, Failed, TimedOut}; terminal states do
// not transition further.
type SessionState string

const (
	StatePending   SessionState = "pending"
	StateActive    SessionState = "active"
	StateSucceeded SessionState = "succeeded"
	StateFailed    SessionState = "failed"
	StateTimedOut  SessionState = "timed_out"
)

// IsTerminal reports whether the state absorbs further signals.
func (s SessionState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateTimedOut
}

// GestureResult tracks detection progress for one selected gesture.
type GestureResult struct {
	Gesture    GestureType `json:"gesture"`
	Detected   bool        `json:"detected"`
	Confidence float64     `json:"confidence"`
	Attempts   int         `json:"attempts"`
	DurationMs int64       `json:"duration_ms"`
}

// Session is one liveness challenge: a set of required gestures, the
// per-gesture progress, and the aggregate outcome. OverallScore is only
// meaningful once the session reaches a terminal state.
type Session struct {
	ID               string
	State            SessionState
	RequiredGestures int
	Selected         []GestureType
	Results          map[GestureType]*GestureResult
	OverallScore     float64
	StartedAt        time.Time
	TimeoutMs        int64
	CompletedAt      *time.Time
}

// CompletedCount returns how many selected gestures have been accepted.
func (s *Session) CompletedCount() int {
	count := 0
	for _, r := range s.Results {
		if r.Detected {
			count++
		}
	}
	return count
}

// Instruction is the client-facing prompt for one gesture.
type Instruction struct {
	Gesture     GestureType `json:"gesture"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Tips        []string    `json:"tips"`
}
