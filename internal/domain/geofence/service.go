package geofence

import (
	"context"
)

// Service defines zone administration and point validation
type Service interface {
	// Validate checks a point against a zone set: the point passes when it
	// falls within any active zone. Pure computation over the given zones.
	Validate(point Point, zones []Zone) Result

	CreateZone(ctx context.Context, req CreateZoneRequest) (ZoneResponse, error)
	UpdateZone(ctx context.Context, req UpdateZoneRequest) (ZoneResponse, error)
	DeleteZone(ctx context.Context, id string) error
	ListZones(ctx context.Context) ([]ZoneResponse, error)
}
