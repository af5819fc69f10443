package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
	"fleet-service/internal/service/servicetest"
)

func TestVehicleRegistrationIsNormalizedAndValidated(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewVehicleService(servicetest.Vehicles{Store: store})

	created, err := svc.Create(ctx, adminPrincipal(), CreateVehicleInput{RegistrationNumber: " kdb-442.q ", Make: "Toyota", Model: "Axio"})
	require.NoError(t, err)
	assert.Equal(t, "KDB442Q", created.RegistrationNumber)
	assert.Equal(t, model.VehicleStatusActive, created.Status)

	for _, reg := range []string{"", " - ", "KDB#442", strings.Repeat("K", 33)} {
		_, err := svc.Create(ctx, adminPrincipal(), CreateVehicleInput{RegistrationNumber: reg, Make: "Toyota", Model: "Axio"})
		assert.ErrorIs(t, err, ErrInvalidInput, reg)
		assert.ErrorContains(t, err, "registration_number", reg)
	}
	assert.Len(t, store.Vehicles, 1)

	bad := "KDB/442"
	_, err = svc.Update(ctx, adminPrincipal(), created.ID.String(), UpdateVehicleInput{RegistrationNumber: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	renamed := "kdc 100a"
	updated, err := svc.Update(ctx, adminPrincipal(), created.ID.String(), UpdateVehicleInput{RegistrationNumber: &renamed})
	require.NoError(t, err)
	assert.Equal(t, "KDC100A", updated.RegistrationNumber)

	_, err = svc.Create(ctx, managerPrincipal(), CreateVehicleInput{RegistrationNumber: "KDD1", Make: "Toyota", Model: "Axio"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
