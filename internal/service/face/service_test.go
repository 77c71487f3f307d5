package face

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/employee"
	"github.com/omanjaya/attendancedev-sub009/internal/domain/face"
)

type fakeTemplateRepo struct {
	templates map[string][]face.Template
	nextID    int
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[string][]face.Template{}}
}

func (r *fakeTemplateRepo) Create(ctx context.Context, t face.Template) (face.Template, error) {
	r.nextID++
	t.ID = "tpl-" + string(rune('0'+r.nextID))
	r.templates[t.EmployeeID] = append(r.templates[t.EmployeeID], t)
	return t, nil
}

func (r *fakeTemplateRepo) GetByEmployeeID(ctx context.Context, employeeID string) ([]face.Template, error) {
	return r.templates[employeeID], nil
}

func (r *fakeTemplateRepo) GetAll(ctx context.Context) ([]face.Template, error) {
	var all []face.Template
	for _, list := range r.templates {
		all = append(all, list...)
	}
	return all, nil
}

func (r *fakeTemplateRepo) Replace(ctx context.Context, t face.Template) (face.Template, error) {
	delete(r.templates, t.EmployeeID)
	return r.Create(ctx, t)
}

func (r *fakeTemplateRepo) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	delete(r.templates, employeeID)
	return nil
}

func (r *fakeTemplateRepo) CountEnrolled(ctx context.Context) (int64, error) {
	return int64(len(r.templates)), nil
}

type fakeLogRepo struct {
	entries []face.VerificationLog
}

func (r *fakeLogRepo) Create(ctx context.Context, l face.VerificationLog) error {
	r.entries = append(r.entries, l)
	return nil
}

func (r *fakeLogRepo) CountByAction(ctx context.Context, actions []string, sinceDays int) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, e := range r.entries {
		for _, a := range actions {
			if e.Action == a {
				counts[a]++
			}
		}
	}
	return counts, nil
}

func (r *fakeLogRepo) AverageConfidence(ctx context.Context, sinceDays int) (float64, error) {
	var sum float64
	var n int64
	for _, e := range r.entries {
		if e.Action == face.ActionVerifySuccess || e.Action == face.ActionVerifyFailed {
			sum += e.Confidence
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.Code == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.employees)), nil
}

func newTestService() (face.Service, *fakeTemplateRepo, *fakeLogRepo, *fakeEmployeeRepo) {
	templates := newFakeTemplateRepo()
	logs := &fakeLogRepo{}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Code: "2024-0001", FullName: "Ayu Lestari", IsActive: true},
		"emp-2": {ID: "emp-2", Code: "2024-0002", FullName: "Budi Santoso", IsActive: true},
	}}
	svc := NewFaceService(NewMatcher(), templates, logs, employees)
	return svc, templates, logs, employees
}

func uniformDescriptor(v float64) []float64 {
	d := make([]float64, 128)
	for i := range d {
		d[i] = v
	}
	return d
}

func TestRegisterFace(t *testing.T) {
	svc, _, logs, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.RegisterFace(ctx, face.RegisterFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: uniformDescriptor(0.05),
		Confidence: 0.92,
	})
	require.NoError(t, err)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.NotEmpty(t, resp.TemplateID)
	assert.InDelta(t, 0.92, resp.Confidence, 1e-9)
	assert.Greater(t, resp.QualityScore, 0.0)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, face.ActionRegister, logs.entries[0].Action)
}

func TestRegisterFaceAlreadyRegistered(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	req := face.RegisterFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: uniformDescriptor(0.05),
		Confidence: 0.92,
	}
	_, err := svc.RegisterFace(ctx, req)
	require.NoError(t, err)

	_, err = svc.RegisterFace(ctx, req)
	assert.ErrorIs(t, err, face.ErrFaceAlreadyRegistered)
}

func TestRegisterFaceUnknownEmployee(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.RegisterFace(context.Background(), face.RegisterFaceRequest{
		EmployeeID: "emp-missing",
		Descriptor: uniformDescriptor(0.05),
		Confidence: 0.9,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateFaceReplacesTemplate(t *testing.T) {
	svc, templates, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterFace(ctx, face.RegisterFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: uniformDescriptor(0.05),
		Confidence: 0.9,
	})
	require.NoError(t, err)

	_, err = svc.UpdateFace(ctx, face.UpdateFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: uniformDescriptor(0.07),
		Confidence: 0.95,
	})
	require.NoError(t, err)

	stored := templates.templates["emp-1"]
	require.Len(t, stored, 1)
	assert.InDelta(t, 0.07, stored[0].Descriptor[0], 1e-9)
}

func TestUpdateFaceNotRegistered(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateFace(context.Background(), face.UpdateFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: uniformDescriptor(0.05),
		Confidence: 0.9,
	})
	assert.ErrorIs(t, err, face.ErrFaceNotRegistered)
}

func TestDeleteFace(t *testing.T) {
	svc, templates, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterFace(ctx, face.RegisterFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: uniformDescriptor(0.05),
		Confidence: 0.9,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFace(ctx, "emp-1"))
	assert.Empty(t, templates.templates["emp-1"])

	assert.ErrorIs(t, svc.DeleteFace(ctx, "emp-1"), face.ErrFaceNotRegistered)
}

func TestVerifyFaceAgainstOneEmployee(t *testing.T) {
	svc, _, logs, _ := newTestService()
	ctx := context.Background()

	descriptor := uniformDescriptor(0.05)
	_, err := svc.RegisterFace(ctx, face.RegisterFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: descriptor,
		Confidence: 0.9,
	})
	require.NoError(t, err)

	employeeID := "emp-1"
	resp, err := svc.VerifyFace(ctx, face.VerifyFaceRequest{
		Descriptor: descriptor,
		EmployeeID: &employeeID,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.MatchedEmployeeID)
	assert.Equal(t, "emp-1", *resp.MatchedEmployeeID)
	assert.InDelta(t, 1.0, resp.Confidence, 1e-9)

	last := logs.entries[len(logs.entries)-1]
	assert.Equal(t, face.ActionVerifySuccess, last.Action)
}

func TestVerifyFaceIdentificationMode(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterFace(ctx, face.RegisterFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: uniformDescriptor(0.05),
		Confidence: 0.9,
	})
	require.NoError(t, err)
	_, err = svc.RegisterFace(ctx, face.RegisterFaceRequest{
		EmployeeID: "emp-2",
		Descriptor: uniformDescriptor(0.50),
		Confidence: 0.9,
	})
	require.NoError(t, err)

	resp, err := svc.VerifyFace(ctx, face.VerifyFaceRequest{
		Descriptor: uniformDescriptor(0.05),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.MatchedEmployeeID)
	assert.Equal(t, "emp-1", *resp.MatchedEmployeeID)
}

func TestVerifyFaceNoEnrollment(t *testing.T) {
	svc, _, logs, _ := newTestService()

	resp, err := svc.VerifyFace(context.Background(), face.VerifyFaceRequest{
		Descriptor: uniformDescriptor(0.05),
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Zero(t, resp.Confidence)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, face.ActionVerifyFailed, logs.entries[0].Action)
	assert.Equal(t, []string{"face_mismatch"}, logs.entries[0].Reasons)
}

func TestBatchVerify(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterFace(ctx, face.RegisterFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: uniformDescriptor(0.05),
		Confidence: 0.9,
	})
	require.NoError(t, err)

	resp, err := svc.BatchVerify(ctx, face.BatchVerifyRequest{
		Faces: [][]float64{
			uniformDescriptor(0.05),
			uniformDescriptor(0.90),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	assert.True(t, resp.Results[0].Success)
	require.NotNil(t, resp.Results[0].MatchedEmployeeID)
	assert.Equal(t, "emp-1", *resp.Results[0].MatchedEmployeeID)

	assert.False(t, resp.Results[1].Success)
	assert.Nil(t, resp.Results[1].MatchedEmployeeID)
}

func TestBatchVerifyTooLarge(t *testing.T) {
	svc, _, _, _ := newTestService()

	faces := make([][]float64, face.MaxBatchSize+1)
	for i := range faces {
		faces[i] = uniformDescriptor(0.05)
	}

	_, err := svc.BatchVerify(context.Background(), face.BatchVerifyRequest{Faces: faces})
	assert.ErrorIs(t, err, face.ErrBatchTooLarge)
}

func TestGetStatistics(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	descriptor := uniformDescriptor(0.05)
	_, err := svc.RegisterFace(ctx, face.RegisterFaceRequest{
		EmployeeID: "emp-1",
		Descriptor: descriptor,
		Confidence: 0.9,
	})
	require.NoError(t, err)

	employeeID := "emp-1"
	_, err = svc.VerifyFace(ctx, face.VerifyFaceRequest{Descriptor: descriptor, EmployeeID: &employeeID})
	require.NoError(t, err)
	_, err = svc.VerifyFace(ctx, face.VerifyFaceRequest{Descriptor: uniformDescriptor(0.9), EmployeeID: &employeeID})
	require.NoError(t, err)

	stats, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalEmployees)
	assert.Equal(t, int64(1), stats.EnrolledEmployees)
	assert.InDelta(t, 50.0, stats.EnrollmentPercentage, 1e-9)
	assert.Equal(t, int64(2), stats.TotalVerifications)
	assert.Equal(t, int64(1), stats.SuccessfulVerifications)
	assert.InDelta(t, 50.0, stats.RecognitionAccuracy, 1e-9)
}
