package geofence

import (
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
)

const (
	MinRadiusMeters = 10
	MaxRadiusMeters = 5000
)

type GeofenceLocation struct {
	ID           string
	Name         string
	Address      *string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Zone converts the location into the shape the evaluator tests against.
func (g GeofenceLocation) Zone() evaluator.GeofenceZone {
	return evaluator.GeofenceZone{
		Center:       evaluator.GeoPoint{Latitude: g.Latitude, Longitude: g.Longitude},
		RadiusMeters: g.RadiusMeters,
		Active:       g.IsActive,
	}
}
