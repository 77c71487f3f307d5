package liveness

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/liveness"
)

// Policy holds the scoring knobs for the challenge engine. Zero values are
// replaced by the domain defaults in NewEngine.
type Policy struct {
	RequiredGestures    int
	TimeoutMs           int64
	AcceptanceThreshold float64
	BonusThreshold      float64
	BonusPoints         float64
	AttemptCeiling      int
	AttemptPenalty      float64
}

func (p Policy) withDefaults() Policy {
	if p.RequiredGestures == 0 {
		p.RequiredGestures = liveness.DefaultRequiredGestures
	}
	if p.TimeoutMs == 0 {
		p.TimeoutMs = liveness.DefaultTimeoutMs
	}
	if p.AcceptanceThreshold == 0 {
		p.AcceptanceThreshold = liveness.DefaultAcceptanceThreshold
	}
	if p.BonusThreshold == 0 {
		p.BonusThreshold = liveness.DefaultBonusThreshold
	}
	if p.BonusPoints == 0 {
		p.BonusPoints = liveness.DefaultBonusPoints
	}
	if p.AttemptCeiling == 0 {
		p.AttemptCeiling = liveness.DefaultAttemptCeiling
	}
	if p.AttemptPenalty == 0 {
		p.AttemptPenalty = liveness.DefaultAttemptPenalty
	}
	return p
}

type sessionEntry struct {
	mu      sync.Mutex
	session *liveness.Session
}

// Engine is an in-memory liveness challenge engine. Gesture selection uses
// the injected random source and all time arithmetic uses the injected
// clock, so decisions are reproducible under test.
type Engine struct {
	policy Policy
	now    func() time.Time

	mu       sync.Mutex
	rng      *rand.Rand
	sessions map[string]*sessionEntry
}

func NewEngine(policy Policy, now func() time.Time, source rand.Source) liveness.Service {
	if now == nil {
		now = time.Now
	}
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}
	return &Engine{
		policy:   policy.withDefaults(),
		now:      now,
		rng:      rand.New(source),
		sessions: make(map[string]*sessionEntry),
	}
}

// StartSession implements liveness.Service.
func (e *Engine) StartSession(ctx context.Context, req liveness.StartSessionRequest) (liveness.SessionResponse, error) {
	if req.RequiredGestures == 0 {
		req.RequiredGestures = e.policy.RequiredGestures
	}
	if req.TimeoutMs == 0 {
		req.TimeoutMs = e.policy.TimeoutMs
	}
	if req.RequiredGestures < 1 || req.RequiredGestures > len(liveness.SupportedGestures) {
		return liveness.SessionResponse{}, liveness.ErrInvalidGestureCount
	}
	if req.TimeoutMs < 0 {
		return liveness.SessionResponse{}, liveness.ErrInvalidTimeout
	}

	now := e.now().UTC()

	e.mu.Lock()
	e.sweepLocked(now)
	selected := e.pickGestures(req.RequiredGestures)
	id := ulid.MustNew(ulid.Timestamp(now), e.rng).String()

	session := &liveness.Session{
		ID:               id,
		State:            liveness.StatePending,
		RequiredGestures: req.RequiredGestures,
		Selected:         selected,
		Results:          make(map[liveness.GestureType]*liveness.GestureResult, len(selected)),
		StartedAt:        now,
		TimeoutMs:        req.TimeoutMs,
	}
	for _, g := range selected {
		session.Results[g] = &liveness.GestureResult{Gesture: g}
	}
	e.sessions[id] = &sessionEntry{session: session}
	e.mu.Unlock()

	return snapshot(session), nil
}

// sessionRetention is how long a session stays resolvable after its
// deadline, so check-in requests arriving shortly after completion can
// still read the outcome.
const sessionRetention = time.Hour

// sweepLocked evicts sessions long past their deadline. Caller holds e.mu.
func (e *Engine) sweepLocked(now time.Time) {
	for id, entry := range e.sessions {
		deadline := entry.session.StartedAt.
			Add(time.Duration(entry.session.TimeoutMs) * time.Millisecond).
			Add(sessionRetention)
		if now.After(deadline) {
			delete(e.sessions, id)
		}
	}
}

// pickGestures draws n distinct gestures. Caller holds e.mu.
func (e *Engine) pickGestures(n int) []liveness.GestureType {
	perm := e.rng.Perm(len(liveness.SupportedGestures))
	selected := make([]liveness.GestureType, 0, n)
	for _, idx := range perm[:n] {
		selected = append(selected, liveness.SupportedGestures[idx])
	}
	return selected
}

// SubmitSignal implements liveness.Service. The first signal activates a
// pending session. Signals arriving after the session reached a terminal
// state are ignored and the terminal snapshot is returned.
func (e *Engine) SubmitSignal(ctx context.Context, sessionID string, signal liveness.Signal) (liveness.SessionUpdate, error) {
	if err := signal.Validate(); err != nil {
		return liveness.SessionUpdate{}, err
	}

	entry, err := e.entry(sessionID)
	if err != nil {
		return liveness.SessionUpdate{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	now := e.now().UTC()
	e.expireLocked(session, now)

	if session.State.IsTerminal() {
		return update(session), nil
	}
	if session.State == liveness.StatePending {
		session.State = liveness.StateActive
	}

	result, ok := session.Results[signal.Gesture]
	if !ok {
		return liveness.SessionUpdate{}, fmt.Errorf("gesture %q is not part of session %s: %w",
			signal.Gesture, sessionID, liveness.ErrUnsupportedGesture)
	}

	if !result.Detected {
		result.Attempts++
		if signal.Detected && signal.Confidence > e.policy.AcceptanceThreshold {
			result.Detected = true
			result.Confidence = signal.Confidence
			result.DurationMs = now.Sub(session.StartedAt).Milliseconds()
		}
	}

	if session.CompletedCount() >= session.RequiredGestures {
		session.State = liveness.StateSucceeded
		session.OverallScore = e.score(session)
		completed := now
		session.CompletedAt = &completed
	}

	return update(session), nil
}

// GetSession implements liveness.Service.
func (e *Engine) GetSession(ctx context.Context, sessionID string) (liveness.SessionResponse, error) {
	entry, err := e.entry(sessionID)
	if err != nil {
		return liveness.SessionResponse{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	e.expireLocked(entry.session, e.now().UTC())
	return snapshot(entry.session), nil
}

// Abort implements liveness.Service. Aborting a terminal session is a
// no-op.
func (e *Engine) Abort(ctx context.Context, sessionID string) (liveness.SessionResponse, error) {
	entry, err := e.entry(sessionID)
	if err != nil {
		return liveness.SessionResponse{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	now := e.now().UTC()
	e.expireLocked(session, now)

	if !session.State.IsTerminal() {
		session.State = liveness.StateFailed
		session.OverallScore = e.score(session)
		session.CompletedAt = &now
	}

	return snapshot(session), nil
}

// Resolve implements liveness.Service.
func (e *Engine) Resolve(ctx context.Context, sessionID string) (*liveness.Session, error) {
	entry, err := e.entry(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	e.expireLocked(entry.session, e.now().UTC())

	clone := *entry.session
	clone.Selected = append([]liveness.GestureType(nil), entry.session.Selected...)
	clone.Results = make(map[liveness.GestureType]*liveness.GestureResult, len(entry.session.Results))
	for g, r := range entry.session.Results {
		copied := *r
		clone.Results[g] = &copied
	}

	return &clone, nil
}

// Instructions implements liveness.Service.
func (e *Engine) Instructions() []liveness.Instruction {
	return []liveness.Instruction{
		{
			Gesture:     liveness.GestureBlink,
			Title:       "Blink",
			Description: "Blink both eyes naturally",
			Tips:        []string{"Keep your face inside the frame", "Blink once, slowly"},
		},
		{
			Gesture:     liveness.GestureSmile,
			Title:       "Smile",
			Description: "Give a clear smile",
			Tips:        []string{"Show your teeth if possible", "Hold the smile for a moment"},
		},
		{
			Gesture:     liveness.GestureTurnHead,
			Title:       "Turn your head",
			Description: "Turn your head left, then right",
			Tips:        []string{"Turn slowly", "Return to center when done"},
		},
		{
			Gesture:     liveness.GestureNod,
			Title:       "Nod",
			Description: "Nod your head up and down",
			Tips:        []string{"Nod slowly", "Keep your eyes on the camera"},
		},
		{
			Gesture:     liveness.GestureOpenMouth,
			Title:       "Open your mouth",
			Description: "Open your mouth wide, then close it",
			Tips:        []string{"Open wide enough to be visible", "Close it smoothly"},
		},
	}
}

func (e *Engine) entry(sessionID string) (*sessionEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.sessions[sessionID]
	if !ok {
		return nil, liveness.ErrSessionNotFound
	}
	return entry, nil
}

// expireLocked applies the timeout transition. Caller holds the entry
// mutex.
func (e *Engine) expireLocked(session *liveness.Session, now time.Time) {
	if session.State.IsTerminal() {
		return
	}
	deadline := session.StartedAt.Add(time.Duration(session.TimeoutMs) * time.Millisecond)
	if now.After(deadline) {
		session.State = liveness.StateTimedOut
		session.OverallScore = e.score(session)
		session.CompletedAt = &now
	}
}

// score starts from the completion ratio, adds a bonus per high-confidence
// gesture, subtracts a penalty per excessively retried gesture, and clamps
// to [0, 100].
func (e *Engine) score(session *liveness.Session) float64 {
	base := float64(session.CompletedCount()) / float64(session.RequiredGestures) * 100

	score := base
	for _, r := range session.Results {
		if r.Detected && r.Confidence > e.policy.BonusThreshold {
			score += e.policy.BonusPoints
		}
		if r.Attempts > e.policy.AttemptCeiling {
			score -= e.policy.AttemptPenalty
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func snapshot(session *liveness.Session) liveness.SessionResponse {
	return liveness.SessionResponse{
		SessionID:        session.ID,
		State:            session.State,
		SelectedGestures: append([]liveness.GestureType(nil), session.Selected...),
		RequiredCount:    session.RequiredGestures,
		TimeoutMs:        session.TimeoutMs,
		IsLive:           session.State == liveness.StateSucceeded,
		Score:            session.OverallScore,
	}
}

func update(session *liveness.Session) liveness.SessionUpdate {
	results := make([]liveness.GestureResult, 0, len(session.Selected))
	for _, g := range session.Selected {
		results = append(results, *session.Results[g])
	}
	return liveness.SessionUpdate{
		SessionID:      session.ID,
		State:          session.State,
		CompletedCount: session.CompletedCount(),
		RequiredCount:  session.RequiredGestures,
		OverallScore:   session.OverallScore,
		Results:        results,
	}
}
