package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
	"fleet-service/internal/service/servicetest"
)

func TestIncidentReportAndResolve(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewIncidentService(servicetest.Incidents{Store: store}, servicetest.Assignments{Store: store}, servicetest.Trips{Store: store})
	p, driver := seedDriver(t, store)
	vehicle := seedVehicle(t, store, model.VehicleStatusActive)
	assignVehicle(t, store, driver, vehicle)

	incident, err := svc.Create(ctx, p, CreateIncidentInput{
		IncidentType: "accident",
		Description:  "Rear bumper scratched at a roundabout",
		DamageAmount: ptr(decimal.NewFromInt(8000)),
	})
	require.NoError(t, err)
	require.NotNil(t, incident.VehicleID)
	assert.Equal(t, vehicle.ID, *incident.VehicleID)
	assert.False(t, incident.IsResolved)

	_, err = svc.Resolve(ctx, p, incident.ID.String())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	resolved, err := svc.Resolve(ctx, managerPrincipal(), incident.ID.String())
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
	assert.NotNil(t, resolved.ResolvedAt)

	_, err = svc.Resolve(ctx, managerPrincipal(), incident.ID.String())
	assert.ErrorIs(t, err, ErrConflict)

	other, _ := seedDriver(t, store)
	own, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, own)

	all, err := svc.List(ctx, adminPrincipal())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIncidentValidation(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewIncidentService(servicetest.Incidents{Store: store}, servicetest.Assignments{Store: store}, servicetest.Trips{Store: store})
	p, _ := seedDriver(t, store)

	_, err := svc.Create(ctx, p, CreateIncidentInput{IncidentType: "theft"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, p, CreateIncidentInput{IncidentType: "damage", Description: "x", DamageAmount: ptr(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, managerPrincipal(), CreateIncidentInput{IncidentType: "damage", Description: "x"})
	assert.ErrorIs(t, err, ErrDriverProfileNotFound)

	// Without an assignment the incident is filed with no vehicle.
	incident, err := svc.Create(ctx, p, CreateIncidentInput{IncidentType: "breakdown", Description: "Flat tyre"})
	require.NoError(t, err)
	assert.Nil(t, incident.VehicleID)
}

func TestIncidentTripMustBelongToDriver(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewIncidentService(servicetest.Incidents{Store: store}, servicetest.Assignments{Store: store}, servicetest.Trips{Store: store})
	trips := newTripService(store)

	owner, ownerDriver := seedDriver(t, store)
	vehicle := seedVehicle(t, store, model.VehicleStatusActive)
	assignVehicle(t, store, ownerDriver, vehicle)
	trip, err := trips.Create(ctx, owner, CreateTripInput{PickupLocation: "A", DropLocation: "B", Revenue: decimal.NewFromInt(800)})
	require.NoError(t, err)
	tripID := trip.ID.String()

	intruder, _ := seedDriver(t, store)
	_, err = svc.Create(ctx, intruder, CreateIncidentInput{TripID: &tripID, IncidentType: "accident", Description: "Dent"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	missing := uuid.NewString()
	_, err = svc.Create(ctx, owner, CreateIncidentInput{TripID: &missing, IncidentType: "accident", Description: "Dent"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, store.Incidents)

	incident, err := svc.Create(ctx, owner, CreateIncidentInput{TripID: &tripID, IncidentType: "accident", Description: "Dent"})
	require.NoError(t, err)
	require.NotNil(t, incident.TripID)
	assert.Equal(t, trip.ID, *incident.TripID)
	require.NotNil(t, incident.VehicleID)
	assert.Equal(t, vehicle.ID, *incident.VehicleID)
}
