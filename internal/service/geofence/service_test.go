package geofence

import (
	"context"
	"testing"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/geofence"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminCtx  = jwt.NewContext(context.Background(), jwt.Claims{UserID: "admin", Role: user.RoleAdmin})
	internCtx = jwt.NewContext(context.Background(), jwt.Claims{UserID: "intern", Role: user.RoleIntern})
)

func TestGeofenceService_CRUD(t *testing.T) {
	store := memory.NewStore()
	svc := NewGeofenceService(store.Geofences())

	created, err := svc.Create(adminCtx, geofence.CreateGeofenceRequest{
		Name: "  Main Office ", Latitude: 14.5995, Longitude: 120.9842, RadiusMeters: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Main Office", created.Name)
	assert.True(t, created.IsActive)

	radius := 250
	updated, err := svc.Update(adminCtx, geofence.UpdateGeofenceRequest{ID: created.ID, RadiusMeters: &radius})
	require.NoError(t, err)
	assert.Equal(t, 250, updated.RadiusMeters)
	assert.Equal(t, "Main Office", updated.Name)

	require.NoError(t, svc.Delete(adminCtx, created.ID))
	_, err = svc.GetByID(adminCtx, created.ID)
	assert.ErrorIs(t, err, geofence.ErrGeofenceNotFound)
}

func TestGeofenceService_RadiusBounds(t *testing.T) {
	svc := NewGeofenceService(memory.NewStore().Geofences())

	for _, radius := range []int{9, 5001} {
		_, err := svc.Create(adminCtx, geofence.CreateGeofenceRequest{Name: "X", Latitude: 0, Longitude: 0, RadiusMeters: radius})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, "radius %d", radius)
		assert.Contains(t, verrs.ToMap(), "radius_meters")
	}
}

func TestGeofenceService_InternsSeeActiveOnly(t *testing.T) {
	store := memory.NewStore()
	svc := NewGeofenceService(store.Geofences())

	inactive := false
	_, err := svc.Create(adminCtx, geofence.CreateGeofenceRequest{Name: "Active", Latitude: 14, Longitude: 121, RadiusMeters: 50})
	require.NoError(t, err)
	hidden, err := svc.Create(adminCtx, geofence.CreateGeofenceRequest{Name: "Closed", Latitude: 14, Longitude: 121, RadiusMeters: 50, IsActive: &inactive})
	require.NoError(t, err)

	all, err := svc.List(adminCtx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := svc.List(internCtx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Active", visible[0].Name)

	_, err = svc.GetByID(internCtx, hidden.ID)
	assert.ErrorIs(t, err, geofence.ErrGeofenceNotFound)
}
