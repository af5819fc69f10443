package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
	"fleet-service/internal/service/servicetest"
)

func ptr[T any](v T) *T { return &v }

func TestChecklistLifecycle(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewChecklistService(servicetest.NewChecklists(store), servicetest.Assignments{Store: store})
	stamp := time.Date(2024, 5, 2, 7, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	p, driver := seedDriver(t, store)
	_, err := svc.Create(ctx, p, CreateChecklistInput{ChecklistType: "pre_trip"})
	assert.ErrorIs(t, err, ErrNoActiveAssignment)

	vehicle := seedVehicle(t, store, model.VehicleStatusActive)
	assignVehicle(t, store, driver, vehicle)

	checklist, err := svc.Create(ctx, p, CreateChecklistInput{ChecklistType: "Pre_Trip"})
	require.NoError(t, err)
	assert.Equal(t, "pre_trip", checklist.ChecklistType)
	assert.Equal(t, vehicle.ID, checklist.VehicleID)
	assert.Equal(t, model.ChecklistStatusPending, checklist.Status)

	completed, err := svc.Update(ctx, p, checklist.ID.String(), UpdateChecklistInput{Status: ptr("completed")})
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, stamp, *completed.CompletedAt)

	reopened, err := svc.Update(ctx, p, checklist.ID.String(), UpdateChecklistInput{Status: ptr("pending")})
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	_, err = svc.Update(ctx, p, checklist.ID.String(), UpdateChecklistInput{Status: ptr("done")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChecklistItemsAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewChecklistService(servicetest.NewChecklists(store), servicetest.Assignments{Store: store})
	owner, driver := seedDriver(t, store)
	stranger, _ := seedDriver(t, store)
	assignVehicle(t, store, driver, seedVehicle(t, store, model.VehicleStatusActive))

	checklist, err := svc.Create(ctx, owner, CreateChecklistInput{ChecklistType: "inventory"})
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, owner, checklist.ID.String(), ChecklistItemInput{
		ItemName:     ptr("Fire extinguisher"),
		ItemCategory: ptr("safety"),
		Condition:    ptr("good"),
	})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, owner, checklist.ID.String(), ChecklistItemInput{ItemName: ptr("Jack"), ItemCategory: ptr("tools")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateItem(ctx, stranger, item.ID.String(), ChecklistItemInput{IsChecked: ptr(true)})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.UpdateItem(ctx, owner, item.ID.String(), ChecklistItemInput{IsChecked: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsChecked)

	items, err := svc.ListItems(ctx, managerPrincipal(), checklist.ID.String())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
