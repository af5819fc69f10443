package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
	"fleet-service/internal/service/servicetest"
)

func TestLoadPrincipalProvisionsDriverRole(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewUserService(servicetest.Users{Store: store}, servicetest.Drivers{Store: store})
	userID := uuid.New()

	p, err := svc.LoadPrincipal(ctx, userID, " jane@fleet.test ")
	require.NoError(t, err)
	assert.Equal(t, model.RoleDriver, p.Role)
	assert.Equal(t, "jane@fleet.test", p.Email)
	assert.Nil(t, p.DriverID)

	stored := store.Users[userID]
	stored.Role = model.RoleManager
	store.Users[userID] = stored

	p, err = svc.LoadPrincipal(ctx, userID, "jane@new.test")
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, p.Role)
	assert.Equal(t, "jane@new.test", p.Email)
}

func TestLoadPrincipalKeepsStoredEmailOnCollision(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewUserService(servicetest.Users{Store: store}, servicetest.Drivers{Store: store})

	taken := "shared@fleet.test"
	owner := uuid.New()
	store.Users[owner] = model.User{ID: owner, Email: &taken, Role: model.RoleAdmin}

	original := "old@fleet.test"
	existing := uuid.New()
	store.Users[existing] = model.User{ID: existing, Email: &original, Role: model.RoleManager}

	for i := 0; i < 2; i++ {
		p, err := svc.LoadPrincipal(ctx, existing, taken)
		require.NoError(t, err)
		assert.Equal(t, model.RoleManager, p.Role)
		assert.Equal(t, original, p.Email)
	}

	newcomer := uuid.New()
	p, err := svc.LoadPrincipal(ctx, newcomer, taken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleDriver, p.Role)
	assert.Empty(t, p.Email)
	assert.Nil(t, store.Users[newcomer].Email)
	assert.Equal(t, taken, *store.Users[owner].Email)
}
