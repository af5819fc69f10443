package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
)

type TripService struct {
	tripRepo       TripStore
	assignmentRepo AssignmentStore
	stats          StatsInvalidator
	now            func() time.Time
}

// NewTripService accepts a nil stats invalidator.
func NewTripService(tripRepo TripStore, assignmentRepo AssignmentStore, stats StatsInvalidator) *TripService {
	return &TripService{
		tripRepo:       tripRepo,
		assignmentRepo: assignmentRepo,
		stats:          stats,
		now:            time.Now,
	}
}

type CreateTripInput struct {
	PickupLocation string
	DropLocation   string
	Distance       *decimal.Decimal
	Revenue        decimal.Decimal
}

// TripWithPayout is returned on creation so the driver sees the amount owed.
type TripWithPayout struct {
	model.Trip
	Payout model.Payout `json:"payout"`
}

// Create records a finished trip on the driver's assigned vehicle together
// with its pending payout.
func (s *TripService) Create(ctx context.Context, principal model.Principal, input CreateTripInput) (*TripWithPayout, error) {
	driverID, err := requireDriver(principal.DriverID)
	if err != nil {
		return nil, err
	}

	pickup := strings.TrimSpace(input.PickupLocation)
	drop := strings.TrimSpace(input.DropLocation)
	if pickup == "" || drop == "" {
		return nil, invalidInput("pickup_location and drop_location are required")
	}
	if err := checkAmount(input.Revenue, "revenue"); err != nil {
		return nil, err
	}
	if err := checkOptionalAmount(input.Distance, "distance"); err != nil {
		return nil, err
	}

	assignment, err := activeAssignment(ctx, s.assignmentRepo, driverID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	trip := &model.Trip{
		DriverID:       driverID,
		VehicleID:      assignment.VehicleID,
		PickupLocation: pickup,
		DropLocation:   drop,
		Distance:       input.Distance,
		Revenue:        input.Revenue.Round(2),
		StartTime:      &now,
		EndTime:        &now,
		Status:         model.TripStatusCompleted,
	}
	payout := &model.Payout{
		DriverID:         driverID,
		Revenue:          trip.Revenue,
		CalculatedAmount: CalculatePayout(trip.Revenue),
		Status:           model.PayoutStatusPending,
	}

	if err := s.tripRepo.CreateWithPayout(ctx, trip, payout); err != nil {
		return nil, translateStoreError(err)
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}

	return &TripWithPayout{Trip: *trip, Payout: *payout}, nil
}

func (s *TripService) List(ctx context.Context, principal model.Principal) ([]model.Trip, error) {
	if principal.IsStaff() {
		return s.tripRepo.List(ctx, nil)
	}
	driverID, err := requireDriver(principal.DriverID)
	if err != nil {
		return nil, err
	}
	return s.tripRepo.List(ctx, &driverID)
}

func (s *TripService) GetByID(ctx context.Context, principal model.Principal, id string) (*model.Trip, error) {
	tripID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	if !principal.IsStaff() && !ownsRecord(principal.DriverID, trip.DriverID) {
		return nil, ErrPermissionDenied
	}

	return trip, nil
}

func activeAssignment(ctx context.Context, repo AssignmentStore, driverID uuid.UUID) (*model.Assignment, error) {
	assignment, err := repo.FindActiveByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrNoActiveAssignment
	}
	return assignment, nil
}
