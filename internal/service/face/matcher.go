package face

import (
	"math"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/utils"
)

// euclideanMatcher compares descriptors by Euclidean distance, the domain
// convention for face-api.js style 128-dimension descriptors.
type euclideanMatcher struct{}

func NewMatcher() face.Matcher {
	return &euclideanMatcher{}
}

// Match implements face.Matcher. Confidence is 1 minus the best distance,
// clamped to [0, 1]; a confidence exactly at the threshold matches.
func (m *euclideanMatcher) Match(query []float64, candidates []face.Template, threshold float64) (face.MatchResult, error) {
	if threshold < 0 || threshold > 1 {
		return face.MatchResult{}, face.ErrInvalidThreshold
	}

	if len(query) != 128 {
		return face.MatchResult{}, face.ErrDimensionMismatch
	}

	// No enrolled template is a valid, expected outcome, not an error.
	if len(candidates) == 0 {
		return face.MatchResult{Matched: false, Confidence: 0}, nil
	}

	best := face.MatchResult{Distance: math.MaxFloat64}
	for _, candidate := range candidates {
		if len(candidate.Descriptor) != 128 {
			return face.MatchResult{}, face.ErrDimensionMismatch
		}

		distance := euclideanDistance(query, candidate.Descriptor)
		if distance < best.Distance {
			best.Distance = distance
			best.BestTemplateID = candidate.ID
			best.EmployeeID = candidate.EmployeeID
		}
	}

	best.Confidence = utils.Clamp01(1 - best.Distance)
	best.Matched = best.Confidence >= threshold

	return best, nil
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
