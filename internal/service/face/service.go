package face

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/employee"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/verification"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/utils"
)

const statisticsWindowDays = 30

type FaceServiceImpl struct {
	matcher face.Matcher
	face.TemplateRepository
	face.VerificationLogRepository
	employee.Repository
}

func NewFaceService(
	matcher face.Matcher,
	templateRepo face.TemplateRepository,
	logRepo face.VerificationLogRepository,
	employeeRepo employee.Repository,
) face.Service {
	return &FaceServiceImpl{
		matcher:                   matcher,
		TemplateRepository:        templateRepo,
		VerificationLogRepository: logRepo,
		Repository:                employeeRepo,
	}
}

// RegisterFace implements face.Service.
func (s *FaceServiceImpl) RegisterFace(ctx context.Context, req face.RegisterFaceRequest) (face.RegisterFaceResponse, error) {
	if err := req.Validate(); err != nil {
		return face.RegisterFaceResponse{}, err
	}

	if _, err := s.Repository.GetByID(ctx, req.EmployeeID); err != nil {
		return face.RegisterFaceResponse{}, err
	}

	existing, err := s.TemplateRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return face.RegisterFaceResponse{}, fmt.Errorf("failed to check existing templates: %w", err)
	}
	if len(existing) > 0 {
		return face.RegisterFaceResponse{}, face.ErrFaceAlreadyRegistered
	}

	template := face.Template{
		EmployeeID:             req.EmployeeID,
		Descriptor:             req.Descriptor,
		Algorithm:              defaultString(req.Algorithm, "face-api.js"),
		ModelVersion:           defaultString(req.ModelVersion, "1.0"),
		ConfidenceAtEnrollment: req.Confidence,
		QualityScore:           qualityScore(req.Confidence, req.Descriptor),
	}

	created, err := s.TemplateRepository.Create(ctx, template)
	if err != nil {
		return face.RegisterFaceResponse{}, fmt.Errorf("failed to create face template: %w", err)
	}

	s.logActivity(ctx, face.ActionRegister, &req.EmployeeID, req.Confidence, nil)

	return face.RegisterFaceResponse{
		EmployeeID:   created.EmployeeID,
		TemplateID:   created.ID,
		Confidence:   created.ConfidenceAtEnrollment,
		QualityScore: created.QualityScore,
	}, nil
}

// UpdateFace implements face.Service. The descriptor and metadata are
// replaced atomically.
func (s *FaceServiceImpl) UpdateFace(ctx context.Context, req face.UpdateFaceRequest) (face.RegisterFaceResponse, error) {
	if err := req.Validate(); err != nil {
		return face.RegisterFaceResponse{}, err
	}

	existing, err := s.TemplateRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return face.RegisterFaceResponse{}, fmt.Errorf("failed to check existing templates: %w", err)
	}
	if len(existing) == 0 {
		return face.RegisterFaceResponse{}, face.ErrFaceNotRegistered
	}

	template := face.Template{
		EmployeeID:             req.EmployeeID,
		Descriptor:             req.Descriptor,
		Algorithm:              defaultString(req.Algorithm, "face-api.js"),
		ModelVersion:           defaultString(req.ModelVersion, "1.0"),
		ConfidenceAtEnrollment: req.Confidence,
		QualityScore:           qualityScore(req.Confidence, req.Descriptor),
	}

	replaced, err := s.TemplateRepository.Replace(ctx, template)
	if err != nil {
		return face.RegisterFaceResponse{}, fmt.Errorf("failed to replace face template: %w", err)
	}

	s.logActivity(ctx, face.ActionUpdate, &req.EmployeeID, req.Confidence, nil)

	return face.RegisterFaceResponse{
		EmployeeID:   replaced.EmployeeID,
		TemplateID:   replaced.ID,
		Confidence:   replaced.ConfidenceAtEnrollment,
		QualityScore: replaced.QualityScore,
	}, nil
}

// DeleteFace implements face.Service.
func (s *FaceServiceImpl) DeleteFace(ctx context.Context, employeeID string) error {
	existing, err := s.TemplateRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to check existing templates: %w", err)
	}
	if len(existing) == 0 {
		return face.ErrFaceNotRegistered
	}

	if err := s.TemplateRepository.DeleteByEmployeeID(ctx, employeeID); err != nil {
		return fmt.Errorf("failed to delete face templates: %w", err)
	}

	s.logActivity(ctx, face.ActionDelete, &employeeID, 0, nil)

	return nil
}

// VerifyFace implements face.Service. With an employee ID the query is
// verified against that employee's templates; without one it is identified
// against every enrolled template.
func (s *FaceServiceImpl) VerifyFace(ctx context.Context, req face.VerifyFaceRequest) (face.VerifyFaceResponse, error) {
	if err := req.Validate(); err != nil {
		return face.VerifyFaceResponse{}, err
	}

	var (
		templates []face.Template
		err       error
	)
	if req.EmployeeID != nil {
		templates, err = s.TemplateRepository.GetByEmployeeID(ctx, *req.EmployeeID)
	} else {
		templates, err = s.TemplateRepository.GetAll(ctx)
	}
	if err != nil {
		return face.VerifyFaceResponse{}, fmt.Errorf("failed to load templates: %w", err)
	}

	threshold := face.DefaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	result, err := s.matcher.Match(req.Descriptor, templates, threshold)
	if err != nil {
		return face.VerifyFaceResponse{}, err
	}

	resp := face.VerifyFaceResponse{
		Success:    result.Matched,
		Confidence: result.Confidence,
		Distance:   result.Distance,
	}

	if result.Matched {
		resp.MatchedEmployeeID = &result.EmployeeID
		resp.BestTemplateID = &result.BestTemplateID
		s.logActivity(ctx, face.ActionVerifySuccess, &result.EmployeeID, result.Confidence, nil)
	} else {
		s.logActivity(ctx, face.ActionVerifyFailed, req.EmployeeID, result.Confidence,
			[]string{verification.ReasonFaceMismatch})
	}

	return resp, nil
}

// BatchVerify implements face.Service. The input list length is bounded to
// cap per-request compute cost.
func (s *FaceServiceImpl) BatchVerify(ctx context.Context, req face.BatchVerifyRequest) (face.BatchVerifyResponse, error) {
	if len(req.Faces) > face.MaxBatchSize {
		return face.BatchVerifyResponse{}, face.ErrBatchTooLarge
	}
	if err := req.Validate(); err != nil {
		return face.BatchVerifyResponse{}, err
	}

	templates, err := s.TemplateRepository.GetAll(ctx)
	if err != nil {
		return face.BatchVerifyResponse{}, fmt.Errorf("failed to load templates: %w", err)
	}

	threshold := face.DefaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	results := make([]face.BatchVerifyEntry, 0, len(req.Faces))
	for i, descriptor := range req.Faces {
		match, err := s.matcher.Match(descriptor, templates, threshold)
		if err != nil {
			return face.BatchVerifyResponse{}, err
		}

		entry := face.BatchVerifyEntry{
			Index:      i,
			Success:    match.Matched,
			Confidence: match.Confidence,
		}
		if match.Matched {
			employeeID := match.EmployeeID
			entry.MatchedEmployeeID = &employeeID
		}
		results = append(results, entry)
	}

	return face.BatchVerifyResponse{Results: results}, nil
}

// GetStatistics implements face.Service.
func (s *FaceServiceImpl) GetStatistics(ctx context.Context) (face.Statistics, error) {
	totalEmployees, err := s.Repository.Count(ctx)
	if err != nil {
		return face.Statistics{}, fmt.Errorf("failed to count employees: %w", err)
	}

	enrolled, err := s.TemplateRepository.CountEnrolled(ctx)
	if err != nil {
		return face.Statistics{}, fmt.Errorf("failed to count enrolled employees: %w", err)
	}

	counts, err := s.VerificationLogRepository.CountByAction(ctx,
		[]string{face.ActionVerifySuccess, face.ActionVerifyFailed}, statisticsWindowDays)
	if err != nil {
		return face.Statistics{}, fmt.Errorf("failed to count verification outcomes: %w", err)
	}

	avgConfidence, err := s.VerificationLogRepository.AverageConfidence(ctx, statisticsWindowDays)
	if err != nil {
		return face.Statistics{}, fmt.Errorf("failed to average confidence: %w", err)
	}

	success := counts[face.ActionVerifySuccess]
	total := success + counts[face.ActionVerifyFailed]

	stats := face.Statistics{
		TotalEmployees:          totalEmployees,
		EnrolledEmployees:       enrolled,
		TotalVerifications:      total,
		SuccessfulVerifications: success,
		AverageConfidence:       avgConfidence,
	}
	if totalEmployees > 0 {
		stats.EnrollmentPercentage = round2(float64(enrolled) / float64(totalEmployees) * 100)
	}
	if total > 0 {
		stats.RecognitionAccuracy = round2(float64(success) / float64(total) * 100)
	}

	return stats, nil
}

// logActivity records an audit row. Failures are logged and swallowed so
// auditing never blocks a decision.
func (s *FaceServiceImpl) logActivity(ctx context.Context, action string, employeeID *string, confidence float64, reasons []string) {
	entry := face.VerificationLog{
		ID:         uuid.NewString(),
		Action:     action,
		EmployeeID: employeeID,
		Confidence: confidence,
		Reasons:    reasons,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.VerificationLogRepository.Create(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("failed to write verification log", "action", action, "error", err)
	}
}

// qualityScore estimates enrollment quality from the capture confidence and
// the descriptor's vector norm (well-formed descriptors sit near unit
// norm).
func qualityScore(confidence float64, descriptor []float64) float64 {
	var sum float64
	for _, v := range descriptor {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	normScore := utils.Clamp01(1 - math.Abs(norm-1))

	return round3(0.6*confidence + 0.4*normScore)
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
