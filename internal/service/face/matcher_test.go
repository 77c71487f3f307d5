package face

import (
	"math"
	"testing"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptorAt(offset float64) []float64 {
	d := make([]float64, 128)
	for i := range d {
		d[i] = offset
	}
	return d
}

// descriptorWithDistance builds a descriptor at a known Euclidean distance
// from the zero descriptor by spreading the offset over all dimensions.
func descriptorWithDistance(distance float64) []float64 {
	return descriptorAt(distance / math.Sqrt(128))
}

func TestMatch_SingleTemplateCloseDistance(t *testing.T) {
	matcher := NewMatcher()

	templates := []face.Template{
		{ID: "tpl-1", EmployeeID: "emp-1", Descriptor: descriptorWithDistance(0.05)},
	}

	result, err := matcher.Match(descriptorAt(0), templates, 0.6)
	require.NoError(t, err)

	assert.True(t, result.Matched)
	assert.Equal(t, "tpl-1", result.BestTemplateID)
	assert.Equal(t, "emp-1", result.EmployeeID)
	assert.InDelta(t, 0.95, result.Confidence, 0.001)
	assert.InDelta(t, 0.05, result.Distance, 0.001)
}

func TestMatch_SelectsClosestTemplate(t *testing.T) {
	matcher := NewMatcher()

	templates := []face.Template{
		{ID: "tpl-far", EmployeeID: "emp-1", Descriptor: descriptorWithDistance(0.5)},
		{ID: "tpl-near", EmployeeID: "emp-1", Descriptor: descriptorWithDistance(0.2)},
	}

	result, err := matcher.Match(descriptorAt(0), templates, 0.6)
	require.NoError(t, err)

	assert.Equal(t, "tpl-near", result.BestTemplateID)
	assert.InDelta(t, 0.2, result.Distance, 0.001)
	assert.True(t, result.Matched)
}

func TestMatch_ThresholdBoundaryInclusive(t *testing.T) {
	matcher := NewMatcher()

	// Distance 0.4 gives confidence exactly 0.6.
	templates := []face.Template{
		{ID: "tpl-1", EmployeeID: "emp-1", Descriptor: descriptorWithDistance(0.4)},
	}

	result, err := matcher.Match(descriptorAt(0), templates, 0.6)
	require.NoError(t, err)
	assert.True(t, result.Matched, "confidence equal to threshold must match")

	// Just beyond the boundary is rejected.
	templates[0].Descriptor = descriptorWithDistance(0.401)
	result, err = matcher.Match(descriptorAt(0), templates, 0.6)
	require.NoError(t, err)
	assert.False(t, result.Matched)
}

func TestMatch_EmptyCandidates(t *testing.T) {
	matcher := NewMatcher()

	result, err := matcher.Match(descriptorAt(0), nil, 0.6)
	require.NoError(t, err, "no enrolled template is not an error")

	assert.False(t, result.Matched)
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.BestTemplateID)
}

func TestMatch_DimensionMismatch(t *testing.T) {
	matcher := NewMatcher()

	_, err := matcher.Match(make([]float64, 64), nil, 0.6)
	assert.ErrorIs(t, err, face.ErrDimensionMismatch)

	templates := []face.Template{
		{ID: "tpl-1", EmployeeID: "emp-1", Descriptor: make([]float64, 100)},
	}
	_, err = matcher.Match(descriptorAt(0), templates, 0.6)
	assert.ErrorIs(t, err, face.ErrDimensionMismatch)
}

func TestMatch_InvalidThreshold(t *testing.T) {
	matcher := NewMatcher()

	_, err := matcher.Match(descriptorAt(0), nil, -0.1)
	assert.ErrorIs(t, err, face.ErrInvalidThreshold)

	_, err = matcher.Match(descriptorAt(0), nil, 1.1)
	assert.ErrorIs(t, err, face.ErrInvalidThreshold)
}

func TestMatch_Deterministic(t *testing.T) {
	matcher := NewMatcher()

	templates := []face.Template{
		{ID: "tpl-1", EmployeeID: "emp-1", Descriptor: descriptorWithDistance(0.3)},
		{ID: "tpl-2", EmployeeID: "emp-2", Descriptor: descriptorWithDistance(0.7)},
	}

	first, err := matcher.Match(descriptorAt(0), templates, 0.6)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := matcher.Match(descriptorAt(0), templates, 0.6)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMatch_FarDescriptorConfidenceClamped(t *testing.T) {
	matcher := NewMatcher()

	templates := []face.Template{
		{ID: "tpl-1", EmployeeID: "emp-1", Descriptor: descriptorWithDistance(2.5)},
	}

	result, err := matcher.Match(descriptorAt(0), templates, 0.6)
	require.NoError(t, err)

	assert.False(t, result.Matched)
	assert.Zero(t, result.Confidence, "confidence clamps at 0 for distances beyond 1")
}
