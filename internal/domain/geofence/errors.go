package geofence

import "errors"

var ErrGeofenceNotFound = errors.New("geofence location not found")
