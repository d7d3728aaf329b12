package geofence

import "context"

type GeofenceRepository interface {
	Create(ctx context.Context, location GeofenceLocation) (GeofenceLocation, error)
	GetByID(ctx context.Context, id string) (GeofenceLocation, error)
	// GetActiveByID returns ErrGeofenceNotFound for missing or inactive locations.
	GetActiveByID(ctx context.Context, id string) (GeofenceLocation, error)
	List(ctx context.Context, activeOnly bool) ([]GeofenceLocation, error)
	Update(ctx context.Context, location GeofenceLocation) error
	Delete(ctx context.Context, id string) error
}
