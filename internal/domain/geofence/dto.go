package geofence

import (
	"fmt"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
)

type CreateGeofenceRequest struct {
	Name         string  `json:"name"`
	Address      *string `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	IsActive     *bool   `json:"is_active"`
}

func (r *CreateGeofenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)
	errs = append(errs, validateRadius(r.RadiusMeters)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateGeofenceRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *int     `json:"radius_meters"`
	IsActive     *bool    `json:"is_active"`
}

func (r *UpdateGeofenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if r.RadiusMeters != nil {
		errs = append(errs, validateRadius(*r.RadiusMeters)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GeofenceResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      *string   `json:"address"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RadiusMeters int       `json:"radius_meters"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func validateCoordinates(lat, lng float64) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidLatitude(lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

func validateRadius(radius int) validator.ValidationErrors {
	if radius < MinRadiusMeters || radius > MaxRadiusMeters {
		return validator.ValidationErrors{{
			Field:   "radius_meters",
			Message: fmt.Sprintf("radius_meters must be between %d and %d", MinRadiusMeters, MaxRadiusMeters),
		}}
	}
	return nil
}
