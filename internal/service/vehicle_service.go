package service

import (
	"context"
	"strings"

	"fleet-service/internal/model"
	"fleet-service/internal/utils"
)

type VehicleService struct {
	vehicleRepo VehicleStore
}

func NewVehicleService(vehicleRepo VehicleStore) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

type CreateVehicleInput struct {
	RegistrationNumber  string
	Make                string
	Model               string
	Year                *int
	Capacity            *int
	FuelType            *string
	InsuranceNumber     *string
	InsuranceExpiryDate *string
	PermitNumber        *string
	PermitExpiryDate    *string
	Status              *string
}

type UpdateVehicleInput struct {
	RegistrationNumber  *string
	Make                *string
	Model               *string
	Year                *int
	Capacity            *int
	FuelType            *string
	InsuranceNumber     *string
	InsuranceExpiryDate *string
	PermitNumber        *string
	PermitExpiryDate    *string
	Status              *string
}

func (s *VehicleService) List(ctx context.Context, principal model.Principal, status *string) ([]model.Vehicle, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	var filter *model.VehicleStatus
	if status != nil && *status != "" {
		parsed, err := parseVehicleStatus(*status)
		if err != nil {
			return nil, err
		}
		filter = &parsed
	}
	return s.vehicleRepo.List(ctx, filter)
}

func (s *VehicleService) Create(ctx context.Context, principal model.Principal, input CreateVehicleInput) (*model.Vehicle, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	registration, err := parseRegistration(input.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	vehicle := &model.Vehicle{
		RegistrationNumber: registration,
		Make:               strings.TrimSpace(input.Make),
		Model:              strings.TrimSpace(input.Model),
		Year:               input.Year,
		Capacity:           input.Capacity,
		FuelType:           trimmedPtr(input.FuelType),
		InsuranceNumber:    trimmedPtr(input.InsuranceNumber),
		PermitNumber:       trimmedPtr(input.PermitNumber),
		Status:             model.VehicleStatusActive,
	}
	if vehicle.Make == "" || vehicle.Model == "" {
		return nil, invalidInput("make and model are required")
	}
	if input.Status != nil {
		status, err := parseVehicleStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		vehicle.Status = status
	}

	if vehicle.InsuranceExpiryDate, err = parseOptionalTime(input.InsuranceExpiryDate, "insurance_expiry_date"); err != nil {
		return nil, err
	}
	if vehicle.PermitExpiryDate, err = parseOptionalTime(input.PermitExpiryDate, "permit_expiry_date"); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, translateStoreError(err)
	}
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, principal model.Principal, id string, input UpdateVehicleInput) (*model.Vehicle, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	vehicleID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	if input.RegistrationNumber != nil {
		reg, err := parseRegistration(*input.RegistrationNumber)
		if err != nil {
			return nil, err
		}
		vehicle.RegistrationNumber = reg
	}
	if input.Make != nil {
		vehicle.Make = strings.TrimSpace(*input.Make)
	}
	if input.Model != nil {
		vehicle.Model = strings.TrimSpace(*input.Model)
	}
	if vehicle.Make == "" || vehicle.Model == "" {
		return nil, invalidInput("make and model must not be empty")
	}
	if input.Year != nil {
		vehicle.Year = input.Year
	}
	if input.Capacity != nil {
		vehicle.Capacity = input.Capacity
	}
	if input.FuelType != nil {
		vehicle.FuelType = trimmedPtr(input.FuelType)
	}
	if input.InsuranceNumber != nil {
		vehicle.InsuranceNumber = trimmedPtr(input.InsuranceNumber)
	}
	if input.InsuranceExpiryDate != nil {
		if vehicle.InsuranceExpiryDate, err = parseOptionalTime(input.InsuranceExpiryDate, "insurance_expiry_date"); err != nil {
			return nil, err
		}
	}
	if input.PermitNumber != nil {
		vehicle.PermitNumber = trimmedPtr(input.PermitNumber)
	}
	if input.PermitExpiryDate != nil {
		if vehicle.PermitExpiryDate, err = parseOptionalTime(input.PermitExpiryDate, "permit_expiry_date"); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		status, err := parseVehicleStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		vehicle.Status = status
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, translateStoreError(err)
	}
	return vehicle, nil
}

func parseVehicleStatus(raw string) (model.VehicleStatus, error) {
	status := model.VehicleStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", invalidInput("unknown vehicle status %q", raw)
	}
	return status, nil
}

func parseRegistration(raw string) (string, error) {
	reg, err := utils.ParseRegistration(raw)
	if err != nil {
		return "", invalidInput("registration_number: %v", err)
	}
	return reg, nil
}
