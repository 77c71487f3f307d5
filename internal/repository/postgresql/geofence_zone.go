package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/omanjaya/attendancedev-sub009/internal/domain/geofence"
	"github.com/omanjaya/attendancedev-sub009/internal/pkg/database"
)

type geofenceZoneRepositoryImpl struct {
	db *database.DB
}

func NewGeofenceZoneRepository(db *database.DB) geofence.ZoneRepository {
	return &geofenceZoneRepositoryImpl{db: db}
}

const zoneColumns = `id, name, latitude, longitude, radius_meters, is_active, created_at, updated_at`

// Create implements geofence.ZoneRepository.
func (r *geofenceZoneRepositoryImpl) Create(ctx context.Context, zone geofence.Zone) (geofence.Zone, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO geofence_zones (id, name, latitude, longitude, radius_meters, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + zoneColumns

	var created geofence.Zone
	err := q.QueryRow(ctx, query,
		zone.ID, zone.Name, zone.Latitude, zone.Longitude, zone.RadiusMeters, zone.IsActive,
	).Scan(
		&created.ID, &created.Name, &created.Latitude, &created.Longitude,
		&created.RadiusMeters, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return geofence.Zone{}, fmt.Errorf("failed to insert zone: %w", err)
	}

	return created, nil
}

// GetByID implements geofence.ZoneRepository.
func (r *geofenceZoneRepositoryImpl) GetByID(ctx context.Context, id string) (geofence.Zone, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + zoneColumns + ` FROM geofence_zones WHERE id = $1`

	var zone geofence.Zone
	err := q.QueryRow(ctx, query, id).Scan(
		&zone.ID, &zone.Name, &zone.Latitude, &zone.Longitude,
		&zone.RadiusMeters, &zone.IsActive, &zone.CreatedAt, &zone.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Zone{}, geofence.ErrZoneNotFound
		}
		return geofence.Zone{}, fmt.Errorf("failed to get zone: %w", err)
	}

	return zone, nil
}

// GetActiveZones implements geofence.ZoneRepository.
func (r *geofenceZoneRepositoryImpl) GetActiveZones(ctx context.Context) ([]geofence.Zone, error) {
	return r.list(ctx, `SELECT `+zoneColumns+` FROM geofence_zones WHERE is_active ORDER BY name`)
}

// List implements geofence.ZoneRepository.
func (r *geofenceZoneRepositoryImpl) List(ctx context.Context) ([]geofence.Zone, error) {
	return r.list(ctx, `SELECT `+zoneColumns+` FROM geofence_zones ORDER BY name`)
}

func (r *geofenceZoneRepositoryImpl) list(ctx context.Context, query string) ([]geofence.Zone, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []geofence.Zone
	for rows.Next() {
		var zone geofence.Zone
		err := rows.Scan(
			&zone.ID, &zone.Name, &zone.Latitude, &zone.Longitude,
			&zone.RadiusMeters, &zone.IsActive, &zone.CreatedAt, &zone.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return zones, nil
}

// Update implements geofence.ZoneRepository.
func (r *geofenceZoneRepositoryImpl) Update(ctx context.Context, zone geofence.Zone) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE geofence_zones
		SET name = $1, latitude = $2, longitude = $3, radius_meters = $4,
			is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		zone.Name, zone.Latitude, zone.Longitude, zone.RadiusMeters, zone.IsActive, zone.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.ErrZoneNotFound
		}
		return fmt.Errorf("failed to update zone: %w", err)
	}

	return nil
}

// Delete implements geofence.ZoneRepository.
func (r *geofenceZoneRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM geofence_zones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return geofence.ErrZoneNotFound
	}

	return nil
}
