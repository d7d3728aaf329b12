package memory

import (
	"context"
	"sort"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/geofence"
)

type geofenceRepository struct{ s *Store }

func (s *Store) Geofences() geofence.GeofenceRepository { return geofenceRepository{s} }

func (r geofenceRepository) Create(_ context.Context, location geofence.GeofenceLocation) (geofence.GeofenceLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	location.ID = newID()
	location.CreatedAt = r.s.now()
	location.UpdatedAt = location.CreatedAt
	r.s.geofences[location.ID] = location
	return location, nil
}

func (r geofenceRepository) GetByID(_ context.Context, id string) (geofence.GeofenceLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.geofences[id]
	if !ok {
		return geofence.GeofenceLocation{}, geofence.ErrGeofenceNotFound
	}
	return g, nil
}

func (r geofenceRepository) GetActiveByID(ctx context.Context, id string) (geofence.GeofenceLocation, error) {
	g, err := r.GetByID(ctx, id)
	if err != nil {
		return geofence.GeofenceLocation{}, err
	}
	if !g.IsActive {
		return geofence.GeofenceLocation{}, geofence.ErrGeofenceNotFound
	}
	return g, nil
}

func (r geofenceRepository) List(_ context.Context, activeOnly bool) ([]geofence.GeofenceLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []geofence.GeofenceLocation
	for _, g := range r.s.geofences {
		if activeOnly && !g.IsActive {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r geofenceRepository) Update(_ context.Context, location geofence.GeofenceLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.geofences[location.ID]; !ok {
		return geofence.ErrGeofenceNotFound
	}
	location.UpdatedAt = r.s.now()
	r.s.geofences[location.ID] = location
	return nil
}

func (r geofenceRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.geofences[id]; !ok {
		return geofence.ErrGeofenceNotFound
	}
	delete(r.s.geofences, id)
	for k, a := range r.s.attendance {
		if a.GeofenceLocationID != nil && *a.GeofenceLocationID == id {
			a.GeofenceLocationID = nil
			r.s.attendance[k] = a
		}
	}
	return nil
}
