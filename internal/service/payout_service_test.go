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

func seedPayout(store *servicetest.Store, driverID uuid.UUID, status model.PayoutStatus) model.Payout {
	payout := model.Payout{
		ID:               uuid.New(),
		TripID:           uuid.New(),
		DriverID:         driverID,
		Revenue:          decimal.NewFromInt(2000),
		CalculatedAmount: decimal.NewFromInt(600),
		Status:           status,
	}
	store.Payouts[payout.ID] = payout
	return payout
}

func TestPayoutApproveDefaultsToCalculatedAmount(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewPayoutService(servicetest.Payouts{Store: store}, nil)
	manager := managerPrincipal()
	payout := seedPayout(store, uuid.New(), model.PayoutStatusPending)

	approved, err := svc.Approve(ctx, manager, payout.ID.String(), ApprovePayoutInput{})
	require.NoError(t, err)
	assert.Equal(t, model.PayoutStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAmount)
	assert.True(t, approved.ApprovedAmount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, manager.UserID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	// A second decision on the same payout is refused.
	_, err = svc.Reject(ctx, manager, payout.ID.String(), nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPayoutApproveOverrideAndNotes(t *testing.T) {
	store := servicetest.New()
	svc := NewPayoutService(servicetest.Payouts{Store: store}, nil)
	payout := seedPayout(store, uuid.New(), model.PayoutStatusPending)
	amount := decimal.RequireFromString("550.555")
	notes := "  fuel advance deducted "

	approved, err := svc.Approve(context.Background(), adminPrincipal(), payout.ID.String(), ApprovePayoutInput{ApprovedAmount: &amount, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "550.56", approved.ApprovedAmount.StringFixed(2))
	assert.Equal(t, "fuel advance deducted", *approved.Notes)
}

func TestPayoutTransitions(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewPayoutService(servicetest.Payouts{Store: store}, nil)
	driverPrincipal, driver := seedDriver(t, store)

	pending := seedPayout(store, driver.ID, model.PayoutStatusPending)
	_, err := svc.Approve(ctx, driverPrincipal, pending.ID.String(), ApprovePayoutInput{})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.MarkPaid(ctx, adminPrincipal(), pending.ID.String())
	assert.ErrorIs(t, err, ErrConflict)

	rejected, err := svc.Reject(ctx, managerPrincipal(), pending.ID.String(), nil)
	require.NoError(t, err)
	assert.Equal(t, model.PayoutStatusRejected, rejected.Status)

	approved := seedPayout(store, driver.ID, model.PayoutStatusApproved)
	_, err = svc.MarkPaid(ctx, managerPrincipal(), approved.ID.String())
	assert.ErrorIs(t, err, ErrPermissionDenied)
	paid, err := svc.MarkPaid(ctx, adminPrincipal(), approved.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.PayoutStatusPaid, paid.Status)

	_, err = svc.Approve(ctx, adminPrincipal(), uuid.NewString(), ApprovePayoutInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPayoutList(t *testing.T) {
	ctx := context.Background()
	store := servicetest.New()
	svc := NewPayoutService(servicetest.Payouts{Store: store}, nil)
	driverPrincipal, driver := seedDriver(t, store)
	seedPayout(store, driver.ID, model.PayoutStatusPending)
	seedPayout(store, driver.ID, model.PayoutStatusPaid)
	seedPayout(store, uuid.New(), model.PayoutStatusPending)

	own, err := svc.List(ctx, driverPrincipal, "")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	pending, err := svc.List(ctx, managerPrincipal(), "")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	paid, err := svc.List(ctx, managerPrincipal(), "PAID")
	require.NoError(t, err)
	assert.Len(t, paid, 1)

	_, err = svc.List(ctx, managerPrincipal(), "settled")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
