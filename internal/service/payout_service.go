package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type PayoutService struct {
	payoutRepo PayoutStore
	stats      StatsInvalidator
	now        func() time.Time
}

// NewPayoutService accepts a nil stats invalidator.
func NewPayoutService(payoutRepo PayoutStore, stats StatsInvalidator) *PayoutService {
	return &PayoutService{
		payoutRepo: payoutRepo,
		stats:      stats,
		now:        time.Now,
	}
}

type ApprovePayoutInput struct {
	ApprovedAmount *decimal.Decimal
	Notes          *string
}

// List returns a driver's own payouts. Staff see payouts by status, pending
// unless another status is asked for.
func (s *PayoutService) List(ctx context.Context, principal model.Principal, status string) ([]model.Payout, error) {
	if !principal.IsStaff() {
		driverID, err := requireDriver(principal.DriverID)
		if err != nil {
			return nil, err
		}
		return s.payoutRepo.List(ctx, repository.PayoutListFilter{DriverID: &driverID})
	}

	filter := model.PayoutStatusPending
	if status = strings.ToLower(strings.TrimSpace(status)); status != "" {
		filter = model.PayoutStatus(status)
		if !filter.Valid() {
			return nil, invalidInput("unknown payout status %q", status)
		}
	}
	return s.payoutRepo.List(ctx, repository.PayoutListFilter{Status: &filter})
}

func (s *PayoutService) Approve(ctx context.Context, principal model.Principal, id string, input ApprovePayoutInput) (*model.Payout, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	if err := checkOptionalAmount(input.ApprovedAmount, "approved_amount"); err != nil {
		return nil, err
	}

	return s.transition(ctx, id, model.PayoutStatusPending, func(p *model.Payout) {
		amount := p.CalculatedAmount
		if input.ApprovedAmount != nil {
			amount = input.ApprovedAmount.Round(2)
		}
		now := s.now()
		p.Status = model.PayoutStatusApproved
		p.ApprovedAmount = &amount
		p.ApprovedBy = &principal.UserID
		p.ApprovedAt = &now
		if notes := trimmedPtr(input.Notes); notes != nil {
			p.Notes = notes
		}
	})
}

func (s *PayoutService) Reject(ctx context.Context, principal model.Principal, id string, notes *string) (*model.Payout, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}

	return s.transition(ctx, id, model.PayoutStatusPending, func(p *model.Payout) {
		now := s.now()
		p.Status = model.PayoutStatusRejected
		p.ApprovedBy = &principal.UserID
		p.ApprovedAt = &now
		if n := trimmedPtr(notes); n != nil {
			p.Notes = n
		}
	})
}

func (s *PayoutService) MarkPaid(ctx context.Context, principal model.Principal, id string) (*model.Payout, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	return s.transition(ctx, id, model.PayoutStatusApproved, func(p *model.Payout) {
		p.Status = model.PayoutStatusPaid
	})
}

// transition applies mutate only when the payout is still in status from.
func (s *PayoutService) transition(ctx context.Context, id string, from model.PayoutStatus, mutate func(*model.Payout)) (*model.Payout, error) {
	payoutID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}

	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if payout.Status != from {
		return nil, ErrConflict
	}

	mutate(payout)

	updated, err := s.payoutRepo.UpdateFromStatus(ctx, payout, from)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrConflict
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
	return payout, nil
}
