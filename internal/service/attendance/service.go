package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/attendance"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/liveness"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/schedule"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/verification"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Policy holds the attendance rules that are deployment configuration
// rather than domain constants.
type Policy struct {
	FaceThreshold    float64
	LivenessRequired bool
	Location         *time.Location

	// MinCheckOutGap is the minimum elapsed time between check-in and
	// check-out. Zero accepts any positive duration.
	MinCheckOutGap time.Duration
}

func (p Policy) withDefaults() Policy {
	if p.FaceThreshold == 0 {
		p.FaceThreshold = face.DefaultThreshold
	}
	if p.Location == nil {
		p.Location = time.UTC
	}
	return p
}

// employeeLocks serializes attendance writes per employee so concurrent
// attempts resolve in-process before they reach the database constraint.
// Keying by employee alone keeps the table bounded by workforce size
// instead of growing one entry per day.
type employeeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (d *employeeLocks) get(employeeID string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.locks == nil {
		d.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := d.locks[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		d.locks[employeeID] = lock
	}
	return lock
}

type AttendanceServiceImpl struct {
	policy       Policy
	now          func() time.Time
	orchestrator verification.Orchestrator
	livenessSvc  liveness.Service

	attendanceRepo attendance.Repository
	scheduleRepo   schedule.Repository
	templateRepo   face.TemplateRepository
	zoneRepo       geofence.ZoneRepository
	logRepo        face.VerificationLogRepository

	locks employeeLocks
}

func NewAttendanceService(
	policy Policy,
	now func() time.Time,
	orchestrator verification.Orchestrator,
	livenessSvc liveness.Service,
	attendanceRepo attendance.Repository,
	scheduleRepo schedule.Repository,
	templateRepo face.TemplateRepository,
	zoneRepo geofence.ZoneRepository,
	logRepo face.VerificationLogRepository,
) attendance.Service {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		policy:         policy.withDefaults(),
		now:            now,
		orchestrator:   orchestrator,
		livenessSvc:    livenessSvc,
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		templateRepo:   templateRepo,
		zoneRepo:       zoneRepo,
		logRepo:        logRepo,
	}
}

// CheckIn implements attendance.Service.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckRequest) (attendance.CheckResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckResponse{}, err
	}

	now := s.now().In(s.policy.Location)
	day := attendance.ParseDay(now, s.policy.Location)

	lock := s.locks.get(req.EmployeeID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.CheckResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if existing != nil {
		return attendance.CheckResponse{}, attendance.ErrAlreadyCheckedIn
	}

	decision, err := s.verify(ctx, req)
	if err != nil {
		return attendance.CheckResponse{}, err
	}
	s.logDecision(ctx, req.EmployeeID, decision)
	if !decision.Accepted {
		return rejection(decision), nil
	}

	status := attendance.StatusPresent
	var lateMinutes *int
	sched, err := s.scheduleRepo.GetSchedule(ctx, req.EmployeeID, day)
	switch {
	case err == nil:
		if now.After(sched.LateDeadline()) {
			status = attendance.StatusLate
			minutes := int(now.Sub(sched.ExpectedStart).Minutes())
			lateMinutes = &minutes
		}
	case errors.Is(err, schedule.ErrNoScheduleFound):
		// No schedule means no lateness rule applies.
	default:
		return attendance.CheckResponse{}, fmt.Errorf("failed to load schedule: %w", err)
	}

	checkIn := now
	confidence := decision.Face.Confidence
	record := attendance.Attendance{
		EmployeeID:        req.EmployeeID,
		Date:              day,
		CheckInTime:       &checkIn,
		CheckInConfidence: &confidence,
		Status:            status,
		LateMinutes:       lateMinutes,
	}
	if req.Location != nil {
		record.CheckInLatitude = &req.Location.Latitude
		record.CheckInLongitude = &req.Location.Longitude
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.CheckResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.CheckResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return acceptance(created, decision), nil
}

// CheckOut implements attendance.Service.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckRequest) (attendance.CheckResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckResponse{}, err
	}

	now := s.now().In(s.policy.Location)
	day := attendance.ParseDay(now, s.policy.Location)

	lock := s.locks.get(req.EmployeeID)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.CheckResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if record == nil || record.CheckInTime == nil {
		return attendance.CheckResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOutTime != nil {
		return attendance.CheckResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if !now.After(*record.CheckInTime) || now.Sub(*record.CheckInTime) < s.policy.MinCheckOutGap {
		return attendance.CheckResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	decision, err := s.verify(ctx, req)
	if err != nil {
		return attendance.CheckResponse{}, err
	}
	s.logDecision(ctx, req.EmployeeID, decision)
	if !decision.Accepted {
		return rejection(decision), nil
	}

	checkOut := now
	confidence := decision.Face.Confidence
	total := round2(checkOut.Sub(*record.CheckInTime).Hours())

	record.CheckOutTime = &checkOut
	record.CheckOutConfidence = &confidence
	record.TotalHours = &total
	if req.Location != nil {
		record.CheckOutLatitude = &req.Location.Latitude
		record.CheckOutLongitude = &req.Location.Longitude
	}

	sched, err := s.scheduleRepo.GetSchedule(ctx, req.EmployeeID, day)
	switch {
	case err == nil:
		overtime := round2(math.Max(0, total-sched.ExpectedDurationHours()-sched.OvertimeThresholdHours))
		record.OvertimeHours = &overtime
	case errors.Is(err, schedule.ErrNoScheduleFound):
		// Without a schedule there is no overtime baseline.
	default:
		return attendance.CheckResponse{}, fmt.Errorf("failed to load schedule: %w", err)
	}

	if err := s.attendanceRepo.Update(ctx, *record); err != nil {
		return attendance.CheckResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return acceptance(*record, decision), nil
}

// verify assembles the attempt and runs the orchestrator.
func (s *AttendanceServiceImpl) verify(ctx context.Context, req attendance.CheckRequest) (verification.Decision, error) {
	templates, err := s.templateRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return verification.Decision{}, fmt.Errorf("failed to load templates: %w", err)
	}
	if len(templates) == 0 {
		return verification.Decision{}, face.ErrFaceNotRegistered
	}

	zones, err := s.zoneRepo.GetActiveZones(ctx)
	if err != nil {
		return verification.Decision{}, fmt.Errorf("failed to load zones: %w", err)
	}

	var session *liveness.Session
	if req.LivenessSessionID != nil {
		session, err = s.livenessSvc.Resolve(ctx, *req.LivenessSessionID)
		if err != nil && !errors.Is(err, liveness.ErrSessionNotFound) {
			return verification.Decision{}, fmt.Errorf("failed to resolve liveness session: %w", err)
		}
	}

	return s.orchestrator.Verify(verification.Attempt{
		EmployeeID:        req.EmployeeID,
		QueryDescriptor:   req.FaceDescriptor,
		ClaimedConfidence: req.FaceConfidence,
		Location:          req.Location,
		LivenessSession:   session,
		LivenessRequired:  s.policy.LivenessRequired,
		Threshold:         s.policy.FaceThreshold,
	}, templates, zones)
}

// logDecision records the verification outcome with its rejection reasons.
// Failures are logged and swallowed so auditing never blocks a decision.
func (s *AttendanceServiceImpl) logDecision(ctx context.Context, employeeID string, decision verification.Decision) {
	action := face.ActionVerifySuccess
	if !decision.Accepted {
		action = face.ActionVerifyFailed
	}
	entry := face.VerificationLog{
		ID:         uuid.NewString(),
		Action:     action,
		EmployeeID: &employeeID,
		Confidence: decision.Face.Confidence,
		Reasons:    decision.Reasons,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.logRepo.Create(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("failed to write verification log", "action", action, "error", err)
	}
}

// GetStatus implements attendance.Service.
func (s *AttendanceServiceImpl) GetStatus(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	now := s.now().In(s.policy.Location)
	day := attendance.ParseDay(now, s.policy.Location)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if record == nil {
		return attendance.StatusResponse{Status: attendance.StatusAbsent}, nil
	}

	resp := attendance.StatusResponse{
		CheckedIn:  record.CheckInTime != nil,
		CheckedOut: record.CheckOutTime != nil,
		Status:     record.Status,
	}
	if record.CheckInTime != nil {
		in := record.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &in
	}
	if record.CheckOutTime != nil {
		out := record.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &out
	}
	if record.TotalHours != nil {
		resp.TotalHours = *record.TotalHours
	} else if record.CheckInTime != nil {
		resp.TotalHours = round2(now.Sub(*record.CheckInTime).Hours())
	}

	return resp, nil
}

// GetHistory implements attendance.Service.
func (s *AttendanceServiceImpl) GetHistory(ctx context.Context, employeeID string, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}

	records, total, err := s.attendanceRepo.History(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to load history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAttendanceResponse(record))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// GetSummary implements attendance.Service.
func (s *AttendanceServiceImpl) GetSummary(ctx context.Context, employeeID string, from, to time.Time) (attendance.Summary, error) {
	summary, err := s.attendanceRepo.Summarize(ctx, employeeID, from, to)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}
	return summary, nil
}

// MarkIncomplete implements attendance.Service. Records still open past
// their schedule's incomplete deadline are relabeled; records without a
// schedule are left untouched.
func (s *AttendanceServiceImpl) MarkIncomplete(ctx context.Context, date time.Time) (int, error) {
	day := attendance.ParseDay(date, s.policy.Location)

	open, err := s.attendanceRepo.ListOpenBefore(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to list open attendance: %w", err)
	}

	now := s.now().In(s.policy.Location)
	marked := 0
	for _, record := range open {
		sched, err := s.scheduleRepo.GetSchedule(ctx, record.EmployeeID, record.Date)
		if errors.Is(err, schedule.ErrNoScheduleFound) {
			continue
		}
		if err != nil {
			return marked, fmt.Errorf("failed to load schedule: %w", err)
		}
		if !now.After(sched.IncompleteDeadline()) {
			continue
		}

		record.Status = attendance.StatusIncomplete
		if err := s.attendanceRepo.Update(ctx, record); err != nil {
			return marked, fmt.Errorf("failed to mark attendance incomplete: %w", err)
		}
		marked++
	}

	return marked, nil
}

func rejection(decision verification.Decision) attendance.CheckResponse {
	resp := attendance.CheckResponse{
		Success: false,
		Reasons: decision.Reasons,
		FaceVerification: &attendance.FaceVerification{
			Confidence: decision.Face.Confidence,
		},
	}
	if decision.Liveness != nil {
		resp.Liveness = livenessSummary(decision.Liveness)
	}
	return resp
}

func acceptance(record attendance.Attendance, decision verification.Decision) attendance.CheckResponse {
	attendanceResp := toAttendanceResponse(record)
	resp := attendance.CheckResponse{
		Success:    true,
		Attendance: &attendanceResp,
		FaceVerification: &attendance.FaceVerification{
			Confidence: decision.Face.Confidence,
		},
	}
	if decision.Liveness != nil {
		resp.Liveness = livenessSummary(decision.Liveness)
	}
	return resp
}

func livenessSummary(session *liveness.Session) *attendance.LivenessSummary {
	return &attendance.LivenessSummary{
		IsLive: session.State == liveness.StateSucceeded,
		Score:  session.OverallScore,
		State:  session.State,
	}
}

func toAttendanceResponse(record attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		Date:          record.Date.Format("2006-01-02"),
		Status:        record.Status,
		LateMinutes:   record.LateMinutes,
		TotalHours:    record.TotalHours,
		OvertimeHours: record.OvertimeHours,
	}
	if record.CheckInTime != nil {
		in := record.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &in
	}
	if record.CheckOutTime != nil {
		out := record.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &out
	}
	return resp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
