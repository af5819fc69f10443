package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/service/servicetest"
)

func TestInventoryCreateAndLowStock(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewInventoryService(servicetest.Inventory{Store: store})

	_, err := svc.Create(ctx, managerPrincipal(), InventoryItemInput{ItemName: ptr("Tyre"), Category: ptr("spare_parts")})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	tyre, err := svc.Create(ctx, adminPrincipal(), InventoryItemInput{
		ItemName:     ptr("Tyre"),
		Category:     ptr("Spare_Parts"),
		CurrentStock: ptr(2),
		MinimumStock: ptr(4),
	})
	require.NoError(t, err)
	assert.True(t, tyre.IsActive)
	assert.Equal(t, "spare_parts", tyre.Category)

	_, err = svc.Create(ctx, adminPrincipal(), InventoryItemInput{
		ItemName:     ptr("Wrench"),
		Category:     ptr("tools"),
		CurrentStock: ptr(10),
		MinimumStock: ptr(1),
	})
	require.NoError(t, err)

	low, err := svc.LowStock(ctx, managerPrincipal())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, tyre.ID, low[0].ID)

	restocked, err := svc.Update(ctx, managerPrincipal(), tyre.ID.String(), InventoryItemInput{CurrentStock: ptr(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, restocked.CurrentStock)

	low, err = svc.LowStock(ctx, managerPrincipal())
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestInventoryValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewInventoryService(servicetest.Inventory{Store: servicetest.New()})

	cases := []InventoryItemInput{
		{ItemName: ptr("Tyre")},
		{ItemName: ptr("Tyre"), Category: ptr("snacks")},
		{ItemName: ptr("  "), Category: ptr("tools")},
		{ItemName: ptr("Tyre"), Category: ptr("tools"), CurrentStock: ptr(-1)},
	}
	for _, input := range cases {
		_, err := svc.Create(ctx, adminPrincipal(), input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
