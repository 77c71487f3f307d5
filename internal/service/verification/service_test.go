package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/liveness"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/verification"
	facesvc "github.com/omanjaya/attendancedev-sub009/internal/service/face"
	geofencesvc "github.com/omanjaya/attendancedev-sub009/internal/service/geofence"
)

const (
	officeLat = -8.6705
	officeLon = 115.2126
)

func newOrchestrator() verification.Orchestrator {
	return NewOrchestrator(facesvc.NewMatcher(), geofencesvc.NewGeofenceService(nil))
}

func uniformDescriptor(v float64) []float64 {
	d := make([]float64, 128)
	for i := range d {
		d[i] = v
	}
	return d
}

func enrolled(employeeID string, v float64) []face.Template {
	return []face.Template{{
		ID:         "tpl-" + employeeID,
		EmployeeID: employeeID,
		Descriptor: uniformDescriptor(v),
	}}
}

func officeZones() []geofence.Zone {
	return []geofence.Zone{{
		ID:           "zone-office",
		Name:         "Head Office",
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: 100,
		IsActive:     true,
	}}
}

func succeededSession() *liveness.Session {
	now := time.Now().UTC()
	return &liveness.Session{
		ID:               "01JX0000000000000000000000",
		State:            liveness.StateSucceeded,
		RequiredGestures: 2,
		Selected:         []liveness.GestureType{liveness.GestureBlink, liveness.GestureSmile},
		Results: map[liveness.GestureType]*liveness.GestureResult{
			liveness.GestureBlink: {Gesture: liveness.GestureBlink, Detected: true, Confidence: 0.9},
			liveness.GestureSmile: {Gesture: liveness.GestureSmile, Detected: true, Confidence: 0.8},
		},
		OverallScore: 100,
		StartedAt:    now.Add(-10 * time.Second),
		TimeoutMs:    30000,
		CompletedAt:  &now,
	}
}

func sessionInState(state liveness.SessionState, completed int) *liveness.Session {
	s := succeededSession()
	s.State = state
	i := 0
	for _, r := range s.Results {
		r.Detected = i < completed
		i++
	}
	return s
}

func TestVerifyAllChecksPass(t *testing.T) {
	orc := newOrchestrator()

	decision, err := orc.Verify(verification.Attempt{
		EmployeeID:       "emp-1",
		QueryDescriptor:  uniformDescriptor(0.05),
		Location:         &geofence.Point{Latitude: officeLat, Longitude: officeLon},
		LivenessSession:  succeededSession(),
		LivenessRequired: true,
	}, enrolled("emp-1", 0.05), officeZones())

	require.NoError(t, err)
	assert.True(t, decision.Accepted)
	assert.Empty(t, decision.Reasons)
	assert.True(t, decision.Face.Matched)
	require.NotNil(t, decision.Geofence)
	assert.True(t, decision.Geofence.Within)
}

func TestVerifyFaceMismatchShortCircuits(t *testing.T) {
	orc := newOrchestrator()

	decision, err := orc.Verify(verification.Attempt{
		EmployeeID:       "emp-1",
		QueryDescriptor:  uniformDescriptor(0.9),
		Location:         &geofence.Point{Latitude: officeLat + 1, Longitude: officeLon},
		LivenessRequired: true,
	}, enrolled("emp-1", 0.05), officeZones())

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, []string{verification.ReasonFaceMismatch}, decision.Reasons)
	assert.Nil(t, decision.Geofence, "geofence must not run after a face rejection")
}

func TestVerifyLocationOutOfBounds(t *testing.T) {
	orc := newOrchestrator()

	decision, err := orc.Verify(verification.Attempt{
		EmployeeID:      "emp-1",
		QueryDescriptor: uniformDescriptor(0.05),
		Location:        &geofence.Point{Latitude: officeLat + 1, Longitude: officeLon},
	}, enrolled("emp-1", 0.05), officeZones())

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, []string{verification.ReasonLocationOutOfBounds}, decision.Reasons)
}

func TestVerifyNoZonesSkipsLocationCheck(t *testing.T) {
	orc := newOrchestrator()

	decision, err := orc.Verify(verification.Attempt{
		EmployeeID:      "emp-1",
		QueryDescriptor: uniformDescriptor(0.05),
		Location:        &geofence.Point{Latitude: officeLat + 1, Longitude: officeLon},
	}, enrolled("emp-1", 0.05), nil)

	require.NoError(t, err)
	assert.True(t, decision.Accepted)
	assert.Nil(t, decision.Geofence)
}

func TestVerifyLivenessOutcomes(t *testing.T) {
	orc := newOrchestrator()

	tests := []struct {
		name    string
		session *liveness.Session
		reason  string
	}{
		{"timed out", sessionInState(liveness.StateTimedOut, 0), verification.ReasonLivenessTimeout},
		{"failed with no gestures", sessionInState(liveness.StateFailed, 0), verification.ReasonLivenessFailed},
		{"failed with partial gestures", sessionInState(liveness.StateFailed, 1), verification.ReasonLivenessInsufficient},
		{"still active", sessionInState(liveness.StateActive, 1), verification.ReasonLivenessFailed},
		{"missing session", nil, verification.ReasonLivenessFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := orc.Verify(verification.Attempt{
				EmployeeID:       "emp-1",
				QueryDescriptor:  uniformDescriptor(0.05),
				LivenessSession:  tc.session,
				LivenessRequired: true,
			}, enrolled("emp-1", 0.05), nil)

			require.NoError(t, err)
			assert.False(t, decision.Accepted)
			assert.Equal(t, []string{tc.reason}, decision.Reasons)
		})
	}
}

func TestVerifyLivenessNotRequired(t *testing.T) {
	orc := newOrchestrator()

	decision, err := orc.Verify(verification.Attempt{
		EmployeeID:      "emp-1",
		QueryDescriptor: uniformDescriptor(0.05),
	}, enrolled("emp-1", 0.05), nil)

	require.NoError(t, err)
	assert.True(t, decision.Accepted)
	assert.Nil(t, decision.Liveness)
}

func TestVerifyDiagnosticCollectsAllReasons(t *testing.T) {
	orc := newOrchestrator()

	decision, err := orc.Verify(verification.Attempt{
		EmployeeID:       "emp-1",
		QueryDescriptor:  uniformDescriptor(0.9),
		Location:         &geofence.Point{Latitude: officeLat + 1, Longitude: officeLon},
		LivenessSession:  sessionInState(liveness.StateTimedOut, 0),
		LivenessRequired: true,
		Diagnostic:       true,
	}, enrolled("emp-1", 0.05), officeZones())

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, []string{
		verification.ReasonFaceMismatch,
		verification.ReasonLocationOutOfBounds,
		verification.ReasonLivenessTimeout,
	}, decision.Reasons)
	require.NotNil(t, decision.Geofence)
	require.NotNil(t, decision.Liveness)
}

func TestVerifyClaimedConfidenceIsIgnored(t *testing.T) {
	orc := newOrchestrator()

	// A high claimed confidence cannot turn a mismatch into a match.
	decision, err := orc.Verify(verification.Attempt{
		EmployeeID:        "emp-1",
		QueryDescriptor:   uniformDescriptor(0.9),
		ClaimedConfidence: 0.99,
	}, enrolled("emp-1", 0.05), nil)

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
}

func TestVerifyIsDeterministic(t *testing.T) {
	orc := newOrchestrator()

	attempt := verification.Attempt{
		EmployeeID:      "emp-1",
		QueryDescriptor: uniformDescriptor(0.07),
	}
	templates := enrolled("emp-1", 0.05)

	first, err := orc.Verify(attempt, templates, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		next, err := orc.Verify(attempt, templates, nil)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestVerifyPropagatesMatcherErrors(t *testing.T) {
	orc := newOrchestrator()

	_, err := orc.Verify(verification.Attempt{
		EmployeeID:      "emp-1",
		QueryDescriptor: []float64{1, 2, 3},
	}, enrolled("emp-1", 0.05), nil)

	assert.ErrorIs(t, err, face.ErrDimensionMismatch)
}
