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

func newTripService(store *servicetest.Store) *TripService {
	svc := NewTripService(servicetest.Trips{Store: store}, servicetest.Assignments{Store: store}, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestTripCreateRecordsPendingPayout(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := newTripService(store)
	p, driver := seedDriver(t, store)
	vehicle := seedVehicle(t, store, model.VehicleStatusActive)
	assignVehicle(t, store, driver, vehicle)

	created, err := svc.Create(ctx, p, CreateTripInput{
		PickupLocation: " Westlands ",
		DropLocation:   "CBD",
		Revenue:        decimal.NewFromInt(3000),
	})
	require.NoError(t, err)

	assert.Equal(t, "Westlands", created.PickupLocation)
	assert.Equal(t, vehicle.ID, created.VehicleID)
	assert.Equal(t, model.TripStatusCompleted, created.Status)
	assert.Equal(t, created.ID, created.Payout.TripID)
	assert.Equal(t, model.PayoutStatusPending, created.Payout.Status)
	assert.True(t, created.Payout.CalculatedAmount.Equal(decimal.NewFromInt(1200)))
	assert.Len(t, store.Payouts, 1)
}

func TestTripCreateFailures(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := newTripService(store)
	input := CreateTripInput{PickupLocation: "A", DropLocation: "B", Revenue: decimal.NewFromInt(100)}

	_, err := svc.Create(ctx, model.Principal{UserID: uuid.New(), Role: model.RoleDriver}, input)
	assert.ErrorIs(t, err, ErrDriverProfileNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	p, _ := seedDriver(t, store)
	_, err = svc.Create(ctx, p, input)
	assert.ErrorIs(t, err, ErrNoActiveAssignment)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, p, CreateTripInput{PickupLocation: "A", DropLocation: "B", Revenue: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, store.Trips)
}

func TestTripCreateRejectsOversizedAmounts(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := newTripService(store)
	p, driver := seedDriver(t, store)
	assignVehicle(t, store, driver, seedVehicle(t, store, model.VehicleStatusActive))

	_, err := svc.Create(ctx, p, CreateTripInput{PickupLocation: "A", DropLocation: "B", Revenue: decimal.RequireFromString("1e2000000000")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "revenue")

	_, err = svc.Create(ctx, p, CreateTripInput{PickupLocation: "A", DropLocation: "B", Revenue: decimal.NewFromInt(100000000)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	distance := decimal.RequireFromString("1e12")
	_, err = svc.Create(ctx, p, CreateTripInput{PickupLocation: "A", DropLocation: "B", Distance: &distance, Revenue: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "distance")
	assert.Empty(t, store.Trips)
}

func TestTripVisibility(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := newTripService(store)
	owner, driver := seedDriver(t, store)
	other, _ := seedDriver(t, store)
	assignVehicle(t, store, driver, seedVehicle(t, store, model.VehicleStatusActive))

	created, err := svc.Create(ctx, owner, CreateTripInput{PickupLocation: "A", DropLocation: "B", Revenue: decimal.NewFromInt(500)})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, other, created.ID.String())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	got, err := svc.GetByID(ctx, managerPrincipal(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	own, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, own)
}
