package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
	"fleet-service/internal/service/servicetest"
)

func TestFuelStations(t *testing.T) {
	ctx := context.Background()
	svc := NewFuelService(servicetest.Fuel{Store: servicetest.New()}, servicetest.Assignments{Store: servicetest.New()})

	_, err := svc.CreateStation(ctx, managerPrincipal(), FuelStationInput{Name: ptr("Shell"), Location: ptr("Ngong Rd")})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateStation(ctx, adminPrincipal(), FuelStationInput{Name: ptr("Shell")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	station, err := svc.CreateStation(ctx, adminPrincipal(), FuelStationInput{
		Name:     ptr(" Shell "),
		Location: ptr("Ngong Rd"),
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Shell", station.Name)
	assert.True(t, station.IsActive)

	closed, err := svc.UpdateStation(ctx, adminPrincipal(), station.ID.String(), FuelStationInput{IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, closed.IsActive)

	stations, err := svc.ListStations(ctx, managerPrincipal())
	require.NoError(t, err)
	assert.Len(t, stations, 1)
}

func TestFuelRecords(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewFuelService(servicetest.Fuel{Store: store}, servicetest.Assignments{Store: store})
	p, driver := seedDriver(t, store)
	input := CreateFuelRecordInput{
		FuelType:      "diesel",
		Quantity:      decimal.RequireFromString("40.5"),
		PricePerLiter: decimal.RequireFromString("180.20"),
	}

	_, err := svc.CreateRecord(ctx, p, input)
	assert.ErrorIs(t, err, ErrNoActiveAssignment)

	vehicle := seedVehicle(t, store, model.VehicleStatusActive)
	assignVehicle(t, store, driver, vehicle)

	record, err := svc.CreateRecord(ctx, p, input)
	require.NoError(t, err)
	assert.Equal(t, model.FuelRecordRefuel, record.RecordType)
	assert.Equal(t, vehicle.ID, record.VehicleID)
	assert.Equal(t, "7298.10", record.TotalCost.StringFixed(2))

	bad := input
	bad.RecordType = "siphon"
	_, err = svc.CreateRecord(ctx, p, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = input
	bad.Quantity = decimal.Zero
	_, err = svc.CreateRecord(ctx, p, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	mine, err := svc.ListRecords(ctx, p, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	byVehicle, err := svc.ListRecords(ctx, managerPrincipal(), ptr(vehicle.ID.String()))
	require.NoError(t, err)
	assert.Len(t, byVehicle, 1)
}
