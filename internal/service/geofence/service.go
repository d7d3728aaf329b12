package geofence

import (
	"context"
	"fmt"
	"strings"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/geofence"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
)

type geofenceServiceImpl struct {
	geofenceRepo geofence.GeofenceRepository
}

func NewGeofenceService(geofenceRepo geofence.GeofenceRepository) geofence.GeofenceService {
	return &geofenceServiceImpl{geofenceRepo: geofenceRepo}
}

// Create implements geofence.GeofenceService.
func (s *geofenceServiceImpl) Create(ctx context.Context, req geofence.CreateGeofenceRequest) (geofence.GeofenceResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.GeofenceResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.geofenceRepo.Create(ctx, geofence.GeofenceLocation{
		Name:         strings.TrimSpace(req.Name),
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     isActive,
	})
	if err != nil {
		return geofence.GeofenceResponse{}, fmt.Errorf("failed to create geofence location: %w", err)
	}

	return toGeofenceResponse(created), nil
}

// GetByID implements geofence.GeofenceService. Interns only see active locations.
func (s *geofenceServiceImpl) GetByID(ctx context.Context, id string) (geofence.GeofenceResponse, error) {
	var (
		location geofence.GeofenceLocation
		err      error
	)
	if canManage(ctx) {
		location, err = s.geofenceRepo.GetByID(ctx, id)
	} else {
		location, err = s.geofenceRepo.GetActiveByID(ctx, id)
	}
	if err != nil {
		return geofence.GeofenceResponse{}, err
	}
	return toGeofenceResponse(location), nil
}

// List implements geofence.GeofenceService. Interns only see active locations.
func (s *geofenceServiceImpl) List(ctx context.Context) ([]geofence.GeofenceResponse, error) {
	locations, err := s.geofenceRepo.List(ctx, !canManage(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list geofence locations: %w", err)
	}

	responses := make([]geofence.GeofenceResponse, 0, len(locations))
	for _, l := range locations {
		responses = append(responses, toGeofenceResponse(l))
	}
	return responses, nil
}

// Update implements geofence.GeofenceService.
func (s *geofenceServiceImpl) Update(ctx context.Context, req geofence.UpdateGeofenceRequest) (geofence.GeofenceResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.GeofenceResponse{}, err
	}

	location, err := s.geofenceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return geofence.GeofenceResponse{}, err
	}

	if req.Name != nil {
		location.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		location.Address = req.Address
	}
	if req.Latitude != nil {
		location.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		location.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		location.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := s.geofenceRepo.Update(ctx, location); err != nil {
		return geofence.GeofenceResponse{}, err
	}

	return s.GetByID(ctx, req.ID)
}

// Delete implements geofence.GeofenceService.
func (s *geofenceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.geofenceRepo.Delete(ctx, id)
}

func canManage(ctx context.Context) bool {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return false
	}
	return user.HasPermission(claims.Role, user.PermissionGeofenceManage)
}

func toGeofenceResponse(g geofence.GeofenceLocation) geofence.GeofenceResponse {
	return geofence.GeofenceResponse{
		ID:           g.ID,
		Name:         g.Name,
		Address:      g.Address,
		Latitude:     g.Latitude,
		Longitude:    g.Longitude,
		RadiusMeters: g.RadiusMeters,
		IsActive:     g.IsActive,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
