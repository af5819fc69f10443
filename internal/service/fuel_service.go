package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type FuelService struct {
	fuelRepo       FuelStore
	assignmentRepo AssignmentStore
	now            func() time.Time
}

func NewFuelService(fuelRepo FuelStore, assignmentRepo AssignmentStore) *FuelService {
	return &FuelService{
		fuelRepo:       fuelRepo,
		assignmentRepo: assignmentRepo,
		now:            time.Now,
	}
}

type FuelStationInput struct {
	Name            *string
	Location        *string
	ContactPerson   *string
	Phone           *string
	ContractDetails *string
	IsActive        *bool
}

type CreateFuelRecordInput struct {
	FuelStationID   *string
	RecordType      string
	FuelType        string
	Quantity        decimal.Decimal
	PricePerLiter   decimal.Decimal
	TotalCost       *decimal.Decimal
	OdometerReading *int
	ReceiptNumber   *string
	Notes           *string
	RefuelDate      *string
}

func (s *FuelService) ListStations(ctx context.Context, principal model.Principal) ([]model.FuelStation, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.fuelRepo.ListStations(ctx)
}

// CreateStation always stores an active station; IsActive is only honoured on update.
func (s *FuelService) CreateStation(ctx context.Context, principal model.Principal, input FuelStationInput) (*model.FuelStation, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	station := &model.FuelStation{IsActive: true}
	if input.Name != nil {
		station.Name = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil {
		station.Location = strings.TrimSpace(*input.Location)
	}
	if station.Name == "" || station.Location == "" {
		return nil, invalidInput("name and location are required")
	}
	station.ContactPerson = trimmedPtr(input.ContactPerson)
	station.Phone = trimmedPtr(input.Phone)
	station.ContractDetails = trimmedPtr(input.ContractDetails)

	if err := s.fuelRepo.CreateStation(ctx, station); err != nil {
		return nil, translateStoreError(err)
	}
	return station, nil
}

func (s *FuelService) UpdateStation(ctx context.Context, principal model.Principal, id string, input FuelStationInput) (*model.FuelStation, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	stationID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	station, err := s.fuelRepo.GetStation(ctx, stationID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	if input.Name != nil {
		station.Name = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil {
		station.Location = strings.TrimSpace(*input.Location)
	}
	if station.Name == "" || station.Location == "" {
		return nil, invalidInput("name and location must not be empty")
	}
	if input.ContactPerson != nil {
		station.ContactPerson = trimmedPtr(input.ContactPerson)
	}
	if input.Phone != nil {
		station.Phone = trimmedPtr(input.Phone)
	}
	if input.ContractDetails != nil {
		station.ContractDetails = trimmedPtr(input.ContractDetails)
	}
	if input.IsActive != nil {
		station.IsActive = *input.IsActive
	}

	if err := s.fuelRepo.UpdateStation(ctx, station); err != nil {
		return nil, translateStoreError(err)
	}
	return station, nil
}

// ListRecords returns a driver's own records; staff see all, optionally for
// one vehicle.
func (s *FuelService) ListRecords(ctx context.Context, principal model.Principal, vehicleID *string) ([]model.FuelRecord, error) {
	if !principal.IsStaff() {
		driverID, err := requireDriver(principal.DriverID)
		if err != nil {
			return nil, err
		}
		return s.fuelRepo.ListRecords(ctx, repository.FuelRecordFilter{DriverID: &driverID})
	}

	vid, err := parseOptionalID(vehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}
	return s.fuelRepo.ListRecords(ctx, repository.FuelRecordFilter{VehicleID: vid})
}

func (s *FuelService) CreateRecord(ctx context.Context, principal model.Principal, input CreateFuelRecordInput) (*model.FuelRecord, error) {
	driverID, err := requireDriver(principal.DriverID)
	if err != nil {
		return nil, err
	}

	recordType := model.FuelRecordType(strings.ToLower(strings.TrimSpace(input.RecordType)))
	if recordType == "" {
		recordType = model.FuelRecordRefuel
	}
	if !recordType.Valid() {
		return nil, invalidInput("unknown record_type %q", input.RecordType)
	}
	fuelType := strings.TrimSpace(input.FuelType)
	if fuelType == "" {
		return nil, invalidInput("fuel_type is required")
	}
	if !input.Quantity.IsPositive() {
		return nil, invalidInput("quantity must be positive")
	}
	if err := checkAmount(input.Quantity, "quantity"); err != nil {
		return nil, err
	}
	if err := checkAmount(input.PricePerLiter, "price_per_liter"); err != nil {
		return nil, err
	}
	if err := checkOptionalAmount(input.TotalCost, "total_cost"); err != nil {
		return nil, err
	}
	stationID, err := parseOptionalID(input.FuelStationID, "fuel_station_id")
	if err != nil {
		return nil, err
	}
	refuelDate, err := parseOptionalTime(input.RefuelDate, "refuel_date")
	if err != nil {
		return nil, err
	}

	assignment, err := activeAssignment(ctx, s.assignmentRepo, driverID)
	if err != nil {
		return nil, err
	}

	totalCost := input.Quantity.Mul(input.PricePerLiter).Round(2)
	if input.TotalCost != nil {
		totalCost = input.TotalCost.Round(2)
	}
	if err := checkAmount(totalCost, "total_cost"); err != nil {
		return nil, err
	}

	record := &model.FuelRecord{
		VehicleID:       assignment.VehicleID,
		DriverID:        driverID,
		FuelStationID:   stationID,
		RecordType:      recordType,
		FuelType:        fuelType,
		Quantity:        input.Quantity.Round(2),
		PricePerLiter:   input.PricePerLiter.Round(2),
		TotalCost:       totalCost,
		OdometerReading: input.OdometerReading,
		ReceiptNumber:   trimmedPtr(input.ReceiptNumber),
		Notes:           trimmedPtr(input.Notes),
		RefuelDate:      s.now(),
	}
	if refuelDate != nil {
		record.RefuelDate = *refuelDate
	}

	if err := s.fuelRepo.CreateRecord(ctx, record); err != nil {
		return nil, translateStoreError(err)
	}
	return record, nil
}
