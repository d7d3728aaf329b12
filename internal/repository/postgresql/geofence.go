package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/geofence"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
)

type geofenceRepositoryImpl struct {
	db *database.DB
}

const geofenceColumns = `id, name, address, latitude, longitude, radius_meters, is_active, created_at, updated_at`

func scanGeofence(row pgx.Row) (geofence.GeofenceLocation, error) {
	var g geofence.GeofenceLocation
	err := row.Scan(&g.ID, &g.Name, &g.Address, &g.Latitude, &g.Longitude, &g.RadiusMeters, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// Create implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) Create(ctx context.Context, location geofence.GeofenceLocation) (geofence.GeofenceLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO geofence_locations (name, address, latitude, longitude, radius_meters, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		location.Name, location.Address, location.Latitude, location.Longitude, location.RadiusMeters, location.IsActive,
	).Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		return geofence.GeofenceLocation{}, fmt.Errorf("failed to create geofence location: %w", err)
	}
	return location, nil
}

// GetByID implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) GetByID(ctx context.Context, id string) (geofence.GeofenceLocation, error) {
	q := GetQuerier(ctx, r.db)

	g, err := scanGeofence(q.QueryRow(ctx, `SELECT `+geofenceColumns+` FROM geofence_locations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.GeofenceLocation{}, geofence.ErrGeofenceNotFound
		}
		return geofence.GeofenceLocation{}, fmt.Errorf("failed to get geofence location: %w", err)
	}
	return g, nil
}

// GetActiveByID implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) GetActiveByID(ctx context.Context, id string) (geofence.GeofenceLocation, error) {
	g, err := r.GetByID(ctx, id)
	if err != nil {
		return geofence.GeofenceLocation{}, err
	}
	if !g.IsActive {
		return geofence.GeofenceLocation{}, geofence.ErrGeofenceNotFound
	}
	return g, nil
}

// List implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]geofence.GeofenceLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + geofenceColumns + ` FROM geofence_locations`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofence locations: %w", err)
	}
	defer rows.Close()

	var locations []geofence.GeofenceLocation
	for rows.Next() {
		g, err := scanGeofence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geofence location: %w", err)
		}
		locations = append(locations, g)
	}
	return locations, rows.Err()
}

// Update implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) Update(ctx context.Context, location geofence.GeofenceLocation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE geofence_locations
		SET name = $1, address = $2, latitude = $3, longitude = $4,
			radius_meters = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := q.Exec(ctx, query,
		location.Name, location.Address, location.Latitude, location.Longitude,
		location.RadiusMeters, location.IsActive, location.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update geofence location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return geofence.ErrGeofenceNotFound
	}
	return nil
}

// Delete implements geofence.GeofenceRepository.
func (r *geofenceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM geofence_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete geofence location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return geofence.ErrGeofenceNotFound
	}
	return nil
}

func NewGeofenceRepository(db *database.DB) geofence.GeofenceRepository {
	return &geofenceRepositoryImpl{db: db}
}
