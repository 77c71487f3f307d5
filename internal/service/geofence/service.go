package geofence

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/utils"
)

type GeofenceServiceImpl struct {
	geofence.ZoneRepository
}

func NewGeofenceService(zoneRepo geofence.ZoneRepository) geofence.Service {
	return &GeofenceServiceImpl{ZoneRepository: zoneRepo}
}

// Validate implements geofence.Service. A point passes when its haversine
// distance to any active zone center is at most the zone radius; a point
// exactly on the boundary passes. Inactive zones and zones with a
// non-positive radius never pass.
func (s *GeofenceServiceImpl) Validate(point geofence.Point, zones []geofence.Zone) geofence.Result {
	result := geofence.Result{DistanceMeters: math.MaxFloat64}

	for _, zone := range zones {
		distance := utils.CalculateHaversineDistance(
			point.Latitude, point.Longitude, zone.Latitude, zone.Longitude)

		if distance < result.DistanceMeters {
			result.DistanceMeters = distance
			result.NearestZoneID = zone.ID
		}

		if zone.IsActive && zone.RadiusMeters > 0 && distance <= zone.RadiusMeters {
			result.Within = true
		}
	}

	if result.NearestZoneID == "" {
		result.DistanceMeters = 0
	}

	return result
}

// CreateZone implements geofence.Service.
func (s *GeofenceServiceImpl) CreateZone(ctx context.Context, req geofence.CreateZoneRequest) (geofence.ZoneResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.ZoneResponse{}, err
	}

	zone := geofence.Zone{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     req.IsActive,
	}

	created, err := s.ZoneRepository.Create(ctx, zone)
	if err != nil {
		return geofence.ZoneResponse{}, fmt.Errorf("failed to create zone: %w", err)
	}

	return toZoneResponse(created), nil
}

// UpdateZone implements geofence.Service. Nil fields keep their stored
// values.
func (s *GeofenceServiceImpl) UpdateZone(ctx context.Context, req geofence.UpdateZoneRequest) (geofence.ZoneResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.ZoneResponse{}, err
	}

	zone, err := s.ZoneRepository.GetByID(ctx, req.ID)
	if err != nil {
		return geofence.ZoneResponse{}, err
	}

	if req.Name != nil {
		zone.Name = *req.Name
	}
	if req.Latitude != nil {
		zone.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		zone.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		zone.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}

	if err := s.ZoneRepository.Update(ctx, zone); err != nil {
		return geofence.ZoneResponse{}, fmt.Errorf("failed to update zone: %w", err)
	}

	return toZoneResponse(zone), nil
}

// DeleteZone implements geofence.Service.
func (s *GeofenceServiceImpl) DeleteZone(ctx context.Context, id string) error {
	if _, err := s.ZoneRepository.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.ZoneRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}

	return nil
}

// ListZones implements geofence.Service.
func (s *GeofenceServiceImpl) ListZones(ctx context.Context) ([]geofence.ZoneResponse, error) {
	zones, err := s.ZoneRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	responses := make([]geofence.ZoneResponse, 0, len(zones))
	for _, zone := range zones {
		responses = append(responses, toZoneResponse(zone))
	}

	return responses, nil
}

func toZoneResponse(zone geofence.Zone) geofence.ZoneResponse {
	return geofence.ZoneResponse{
		ID:           zone.ID,
		Name:         zone.Name,
		Latitude:     zone.Latitude,
		Longitude:    zone.Longitude,
		RadiusMeters: zone.RadiusMeters,
		IsActive:     zone.IsActive,
	}
}
