// Package evaluator holds the pure attendance computations: geofence
// containment, lateness, worked hours and under/overtime classification.
//
// Nothing in this package reads the wall clock or touches I/O. Every
// instant is passed in by the caller, so results are deterministic and
// the functions are safe for concurrent use.
package evaluator

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6371000.0

var (
	ErrOutsideZone  = errors.New("location is outside the allowed geofence area")
	ErrInactiveZone = errors.New("geofence zone is not active")
)

// GeoPoint is a WGS84 coordinate in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies within latitude [-90,90] and longitude [-180,180].
func (p GeoPoint) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// GeofenceZone is a circular area a clock event may be required to fall inside.
type GeofenceZone struct {
	Center       GeoPoint `json:"center"`
	RadiusMeters int      `json:"radius_meters"`
	Active       bool     `json:"active"`
}

// ZoneViolationError is returned when a point falls outside a zone. It
// carries the measured distance so the rejection can be diagnosed.
type ZoneViolationError struct {
	DistanceMeters float64
	RadiusMeters   int
}

func (e *ZoneViolationError) Error() string {
	return fmt.Sprintf("%s: %.2fm from center, allowed radius %dm", ErrOutsideZone.Error(), e.DistanceMeters, e.RadiusMeters)
}

func (e *ZoneViolationError) Unwrap() error {
	return ErrOutsideZone
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b GeoPoint) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// IsWithinZone measures the distance from point to the zone center. The
// boundary is inclusive. The zone's Active flag is not consulted; callers
// select an active zone before testing.
func IsWithinZone(point GeoPoint, zone GeofenceZone) (float64, bool) {
	distance := Distance(point, zone.Center)
	return distance, distance <= float64(zone.RadiusMeters)
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
