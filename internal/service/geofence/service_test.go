package geofence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
)

type fakeZoneRepo struct {
	zones map[string]geofence.Zone
}

func newFakeZoneRepo() *fakeZoneRepo {
	return &fakeZoneRepo{zones: map[string]geofence.Zone{}}
}

func (r *fakeZoneRepo) Create(ctx context.Context, zone geofence.Zone) (geofence.Zone, error) {
	r.zones[zone.ID] = zone
	return zone, nil
}

func (r *fakeZoneRepo) GetByID(ctx context.Context, id string) (geofence.Zone, error) {
	zone, ok := r.zones[id]
	if !ok {
		return geofence.Zone{}, geofence.ErrZoneNotFound
	}
	return zone, nil
}

func (r *fakeZoneRepo) GetActiveZones(ctx context.Context) ([]geofence.Zone, error) {
	var active []geofence.Zone
	for _, z := range r.zones {
		if z.IsActive {
			active = append(active, z)
		}
	}
	return active, nil
}

func (r *fakeZoneRepo) List(ctx context.Context) ([]geofence.Zone, error) {
	var all []geofence.Zone
	for _, z := range r.zones {
		all = append(all, z)
	}
	return all, nil
}

func (r *fakeZoneRepo) Update(ctx context.Context, zone geofence.Zone) error {
	if _, ok := r.zones[zone.ID]; !ok {
		return geofence.ErrZoneNotFound
	}
	r.zones[zone.ID] = zone
	return nil
}

func (r *fakeZoneRepo) Delete(ctx context.Context, id string) error {
	delete(r.zones, id)
	return nil
}

// Coordinates around the Denpasar office used across the validation tests.
const (
	officeLat = -8.6705
	officeLon = 115.2126
)

func officeZone(radius float64, active bool) geofence.Zone {
	return geofence.Zone{
		ID:           "zone-office",
		Name:         "Head Office",
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: radius,
		IsActive:     active,
	}
}

func TestValidateInsideZone(t *testing.T) {
	svc := NewGeofenceService(newFakeZoneRepo())

	// Roughly 55 meters north of center.
	result := svc.Validate(
		geofence.Point{Latitude: officeLat + 0.0005, Longitude: officeLon},
		[]geofence.Zone{officeZone(100, true)},
	)

	assert.True(t, result.Within)
	assert.Equal(t, "zone-office", result.NearestZoneID)
	assert.InDelta(t, 55.6, result.DistanceMeters, 1.0)
}

func TestValidateOutsideZone(t *testing.T) {
	svc := NewGeofenceService(newFakeZoneRepo())

	// Roughly 1.1 kilometers away.
	result := svc.Validate(
		geofence.Point{Latitude: officeLat + 0.01, Longitude: officeLon},
		[]geofence.Zone{officeZone(100, true)},
	)

	assert.False(t, result.Within)
	assert.Greater(t, result.DistanceMeters, 1000.0)
}

func TestValidateBoundaryInclusive(t *testing.T) {
	svc := NewGeofenceService(newFakeZoneRepo())

	point := geofence.Point{Latitude: officeLat + 0.0005, Longitude: officeLon}
	probe := svc.Validate(point, []geofence.Zone{officeZone(1e9, true)})

	// A radius exactly equal to the measured distance passes.
	result := svc.Validate(point, []geofence.Zone{officeZone(probe.DistanceMeters, true)})
	assert.True(t, result.Within)
}

func TestValidateInactiveZoneNeverPasses(t *testing.T) {
	svc := NewGeofenceService(newFakeZoneRepo())

	result := svc.Validate(
		geofence.Point{Latitude: officeLat, Longitude: officeLon},
		[]geofence.Zone{officeZone(100, false)},
	)

	assert.False(t, result.Within)
	assert.Equal(t, "zone-office", result.NearestZoneID)
}

func TestValidateZeroRadiusNeverPasses(t *testing.T) {
	svc := NewGeofenceService(newFakeZoneRepo())

	result := svc.Validate(
		geofence.Point{Latitude: officeLat, Longitude: officeLon},
		[]geofence.Zone{officeZone(0, true)},
	)

	assert.False(t, result.Within)
}

func TestValidateAnyZonePasses(t *testing.T) {
	svc := NewGeofenceService(newFakeZoneRepo())

	far := geofence.Zone{
		ID: "zone-branch", Name: "Branch",
		Latitude: officeLat + 1, Longitude: officeLon,
		RadiusMeters: 100, IsActive: true,
	}

	result := svc.Validate(
		geofence.Point{Latitude: officeLat, Longitude: officeLon},
		[]geofence.Zone{far, officeZone(100, true)},
	)

	assert.True(t, result.Within)
	assert.Equal(t, "zone-office", result.NearestZoneID)
	assert.InDelta(t, 0, result.DistanceMeters, 0.001)
}

func TestValidateNoZones(t *testing.T) {
	svc := NewGeofenceService(newFakeZoneRepo())

	result := svc.Validate(geofence.Point{Latitude: officeLat, Longitude: officeLon}, nil)

	assert.False(t, result.Within)
	assert.Empty(t, result.NearestZoneID)
	assert.Zero(t, result.DistanceMeters)
}

func TestCreateZone(t *testing.T) {
	repo := newFakeZoneRepo()
	svc := NewGeofenceService(repo)

	resp, err := svc.CreateZone(context.Background(), geofence.CreateZoneRequest{
		Name:         "Head Office",
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: 150,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Head Office", resp.Name)
	assert.Len(t, repo.zones, 1)
}

func TestCreateZoneInvalidRadius(t *testing.T) {
	svc := NewGeofenceService(newFakeZoneRepo())

	_, err := svc.CreateZone(context.Background(), geofence.CreateZoneRequest{
		Name:         "Bad",
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: 0,
	})
	assert.Error(t, err)
}

func TestUpdateZonePartial(t *testing.T) {
	repo := newFakeZoneRepo()
	svc := NewGeofenceService(repo)

	created, err := svc.CreateZone(context.Background(), geofence.CreateZoneRequest{
		Name:         "Head Office",
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: 150,
		IsActive:     true,
	})
	require.NoError(t, err)

	newRadius := 250.0
	updated, err := svc.UpdateZone(context.Background(), geofence.UpdateZoneRequest{
		ID:           created.ID,
		RadiusMeters: &newRadius,
	})
	require.NoError(t, err)
	assert.InDelta(t, 250.0, updated.RadiusMeters, 1e-9)
	assert.Equal(t, "Head Office", updated.Name)
	assert.True(t, updated.IsActive)
}

func TestUpdateZoneNotFound(t *testing.T) {
	svc := NewGeofenceService(newFakeZoneRepo())

	_, err := svc.UpdateZone(context.Background(), geofence.UpdateZoneRequest{ID: "missing"})
	assert.ErrorIs(t, err, geofence.ErrZoneNotFound)
}

func TestDeleteZone(t *testing.T) {
	repo := newFakeZoneRepo()
	svc := NewGeofenceService(repo)

	created, err := svc.CreateZone(context.Background(), geofence.CreateZoneRequest{
		Name:         "Head Office",
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: 150,
		IsActive:     true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteZone(context.Background(), created.ID))
	assert.Empty(t, repo.zones)

	assert.ErrorIs(t, svc.DeleteZone(context.Background(), created.ID), geofence.ErrZoneNotFound)
}
