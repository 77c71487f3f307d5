package geofence

import (
	"context"
)

// ZoneRepository defines data access methods for geofence zones.
type ZoneRepository interface {
	Create(ctx context.Context, zone Zone) (Zone, error)
	GetByID(ctx context.Context, id string) (Zone, error)

	// GetActiveZones returns every active zone. An empty result means no
	// geofence is configured and location checks are skipped.
	GetActiveZones(ctx context.Context) ([]Zone, error)

	List(ctx context.Context) ([]Zone, error)
	Update(ctx context.Context, zone Zone) error
	Delete(ctx context.Context, id string) error
}
