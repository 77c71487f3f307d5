package liveness

import (
	"context"
)

// Service drives liveness challenge sessions: selecting gestures,
// aggregating detection signals, and deciding live/not-live.
type Service interface {
	// StartSession selects the required gestures and activates a session
	StartSession(ctx context.Context, req StartSessionRequest) (SessionResponse, error)

	// SubmitSignal records one detection attempt. Submitting to a session
	// in a terminal state is a no-op returning the terminal snapshot.
	SubmitSignal(ctx context.Context, sessionID string, signal Signal) (SessionUpdate, error)

	// GetSession returns the current session snapshot, applying the
	// timeout transition if the deadline has passed
	GetSession(ctx context.Context, sessionID string) (SessionResponse, error)

	// Abort explicitly fails an active session
	Abort(ctx context.Context, sessionID string) (SessionResponse, error)

	// Resolve returns a copy of the full session record, applying the
	// timeout transition first. Used by callers that need per-gesture
	// detail rather than the client-facing snapshot.
	Resolve(ctx context.Context, sessionID string) (*Session, error)

	// Instructions returns the client-facing prompt metadata per gesture
	Instructions() []Instruction
}
