package geofence

import (
	"time"
)

// Point is a GPS coordinate claimed by a client. Accuracy is an optional
// client-reported radius in meters and is informational only.
type Point struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Zone is an authorized check-in area: a center and a radius in meters.
// Inactive zones never pass validation.
type Zone struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Result reports whether a point fell inside any active zone, plus the
// nearest zone and its distance for diagnostics.
type Result struct {
	Within         bool    `json:"within"`
	DistanceMeters float64 `json:"distance_meters"`
	NearestZoneID  string  `json:"nearest_zone_id,omitempty"`
}
