package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type IncidentService struct {
	incidentRepo   IncidentStore
	assignmentRepo AssignmentStore
	tripRepo       TripStore
	now            func() time.Time
}

func NewIncidentService(incidentRepo IncidentStore, assignmentRepo AssignmentStore, tripRepo TripStore) *IncidentService {
	return &IncidentService{
		incidentRepo:   incidentRepo,
		assignmentRepo: assignmentRepo,
		tripRepo:       tripRepo,
		now:            time.Now,
	}
}

type CreateIncidentInput struct {
	TripID       *string
	VehicleID    *string
	IncidentType string
	Description  string
	DamageAmount *decimal.Decimal
}

// Create files an incident for the calling driver. A referenced trip must be
// one of the driver's own. Without an explicit vehicle the trip's vehicle or
// the driver's current assignment is used.
func (s *IncidentService) Create(ctx context.Context, principal model.Principal, input CreateIncidentInput) (*model.Incident, error) {
	driverID, err := requireDriver(principal.DriverID)
	if err != nil {
		return nil, err
	}

	incidentType := strings.TrimSpace(input.IncidentType)
	description := strings.TrimSpace(input.Description)
	if incidentType == "" || description == "" {
		return nil, invalidInput("incident_type and description are required")
	}
	if err := checkOptionalAmount(input.DamageAmount, "damage_amount"); err != nil {
		return nil, err
	}

	tripID, err := parseOptionalID(input.TripID, "trip_id")
	if err != nil {
		return nil, err
	}
	vehicleID, err := parseOptionalID(input.VehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}
	if tripID != nil {
		trip, err := s.tripRepo.GetByID(ctx, *tripID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalidInput("trip_id does not exist")
			}
			return nil, err
		}
		if !ownsRecord(&driverID, trip.DriverID) {
			return nil, ErrPermissionDenied
		}
		if vehicleID == nil {
			vehicleID = &trip.VehicleID
		}
	}
	if vehicleID == nil {
		assignment, err := s.assignmentRepo.FindActiveByDriver(ctx, driverID)
		if err != nil {
			return nil, err
		}
		if assignment != nil {
			vehicleID = &assignment.VehicleID
		}
	}

	incident := &model.Incident{
		TripID:       tripID,
		DriverID:     &driverID,
		VehicleID:    vehicleID,
		IncidentType: incidentType,
		Description:  description,
		DamageAmount: input.DamageAmount,
		ReportedAt:   s.now(),
	}
	if err := s.incidentRepo.Create(ctx, incident); err != nil {
		return nil, translateStoreError(err)
	}
	return incident, nil
}

func (s *IncidentService) List(ctx context.Context, principal model.Principal) ([]model.Incident, error) {
	if principal.IsStaff() {
		return s.incidentRepo.List(ctx, nil)
	}
	driverID, err := requireDriver(principal.DriverID)
	if err != nil {
		return nil, err
	}
	return s.incidentRepo.List(ctx, &driverID)
}

func (s *IncidentService) Resolve(ctx context.Context, principal model.Principal, id string) (*model.Incident, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}

	incidentID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	incident, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if incident.IsResolved {
		return nil, ErrConflict
	}

	now := s.now()
	incident.IsResolved = true
	incident.ResolvedAt = &now
	if err := s.incidentRepo.Update(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}
