package geofence

import "errors"

// Geofence domain errors
var ErrZoneNotFound = errors.New("geofence zone not found")
