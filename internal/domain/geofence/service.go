package geofence

import "context"

type GeofenceService interface {
	Create(ctx context.Context, req CreateGeofenceRequest) (GeofenceResponse, error)
	GetByID(ctx context.Context, id string) (GeofenceResponse, error)
	List(ctx context.Context) ([]GeofenceResponse, error)
	Update(ctx context.Context, req UpdateGeofenceRequest) (GeofenceResponse, error)
	Delete(ctx context.Context, id string) error
}
