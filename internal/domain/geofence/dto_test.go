package geofence

import (
	"testing"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGeofenceRequest_Validate(t *testing.T) {
	cases := []struct {
		name      string
		req       CreateGeofenceRequest
		badFields []string
	}{
		{
			name: "valid",
			req:  CreateGeofenceRequest{Name: "Main Office", Latitude: 14.5995, Longitude: 120.9842, RadiusMeters: 100},
		},
		{
			name: "radius lower bound",
			req:  CreateGeofenceRequest{Name: "A", Latitude: 0, Longitude: 0, RadiusMeters: 10},
		},
		{
			name: "radius upper bound",
			req:  CreateGeofenceRequest{Name: "A", Latitude: 0, Longitude: 0, RadiusMeters: 5000},
		},
		{
			name:      "radius too small",
			req:       CreateGeofenceRequest{Name: "A", RadiusMeters: 9},
			badFields: []string{"radius_meters"},
		},
		{
			name:      "radius too large",
			req:       CreateGeofenceRequest{Name: "A", RadiusMeters: 5001},
			badFields: []string{"radius_meters"},
		},
		{
			name:      "missing name and bad coordinates",
			req:       CreateGeofenceRequest{Latitude: 91, Longitude: -181, RadiusMeters: 50},
			badFields: []string{"name", "latitude", "longitude"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			if len(c.badFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			for _, f := range c.badFields {
				assert.Contains(t, verrs.ToMap(), f)
			}
		})
	}
}

func TestGeofenceLocation_Zone(t *testing.T) {
	loc := GeofenceLocation{Latitude: 14.0, Longitude: 121.0, RadiusMeters: 100, IsActive: true}
	zone := loc.Zone()

	assert.Equal(t, 14.0, zone.Center.Latitude)
	assert.Equal(t, 121.0, zone.Center.Longitude)
	assert.Equal(t, 100, zone.RadiusMeters)
	assert.True(t, zone.Active)
}
