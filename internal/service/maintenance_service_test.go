package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
	"fleet-service/internal/service/servicetest"
)

func TestMaintenanceRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewMaintenanceService(servicetest.NewMaintenance(store), servicetest.Vehicles{Store: store})
	stamp := time.Date(2024, 6, 10, 16, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }
	vehicle := seedVehicle(t, store, model.VehicleStatusMaintenance)
	manager := managerPrincipal()

	record, err := svc.Create(ctx, manager, MaintenanceInput{
		VehicleID:       ptr(vehicle.ID.String()),
		MaintenanceType: ptr("repair"),
		Description:     ptr("Replace brake pads"),
		ScheduledDate:   ptr("2024-06-10"),
		Cost:            ptr(decimal.RequireFromString("4500")),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MaintenanceStatusScheduled, record.Status)
	assert.Nil(t, record.CompletedDate)
	require.NotNil(t, record.ScheduledDate)

	done, err := svc.Update(ctx, manager, record.ID.String(), MaintenanceInput{Status: ptr("completed")})
	require.NoError(t, err)
	require.NotNil(t, done.CompletedDate)
	assert.Equal(t, stamp, *done.CompletedDate)

	_, err = svc.Update(ctx, manager, record.ID.String(), MaintenanceInput{VehicleID: ptr(uuid.NewString())})
	assert.ErrorIs(t, err, ErrInvalidInput)

	task, err := svc.AddTask(ctx, manager, record.ID.String(), MaintenanceTaskInput{TaskName: ptr("Bleed brakes")})
	require.NoError(t, err)
	tasks, err := svc.ListTasks(ctx, manager, record.ID.String())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestMaintenanceValidation(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewMaintenanceService(servicetest.NewMaintenance(store), servicetest.Vehicles{Store: store})
	vehicle := seedVehicle(t, store, model.VehicleStatusActive)
	driverPrincipal, _ := seedDriver(t, store)

	_, err := svc.List(ctx, driverPrincipal, nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Create(ctx, adminPrincipal(), MaintenanceInput{VehicleID: ptr(vehicle.ID.String())})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, adminPrincipal(), MaintenanceInput{
		VehicleID:       ptr(vehicle.ID.String()),
		MaintenanceType: ptr("polish"),
		Description:     ptr("Wax"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, adminPrincipal(), MaintenanceInput{
		VehicleID:       ptr(uuid.NewString()),
		MaintenanceType: ptr("service"),
		Description:     ptr("Oil change"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
