package service

import (
	"context"
	"strings"

	"fleet-service/internal/model"
)

type DriverService struct {
	driverRepo DriverStore
	userRepo   UserStore
}

func NewDriverService(driverRepo DriverStore, userRepo UserStore) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		userRepo:   userRepo,
	}
}

type CreateDriverInput struct {
	UserID            string
	EmployeeID        string
	PhoneNumber       *string
	Address           *string
	LicenseNumber     *string
	LicenseExpiryDate *string
	DateOfBirth       *string
	EmergencyContact  *string
}

type UpdateDriverInput struct {
	EmployeeID        *string
	PhoneNumber       *string
	Address           *string
	LicenseNumber     *string
	LicenseExpiryDate *string
	DateOfBirth       *string
	EmergencyContact  *string
	IsActive          *bool
}

func (s *DriverService) List(ctx context.Context, principal model.Principal) ([]model.Driver, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.driverRepo.List(ctx)
}

func (s *DriverService) Get(ctx context.Context, principal model.Principal, id string) (*model.Driver, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	driverID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return driver, nil
}

func (s *DriverService) Create(ctx context.Context, principal model.Principal, input CreateDriverInput) (*model.Driver, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	userID, err := parseID(input.UserID, "user_id")
	if err != nil {
		return nil, err
	}
	employeeID := strings.TrimSpace(input.EmployeeID)
	if employeeID == "" {
		return nil, invalidInput("employee_id is required")
	}
	licenseExpiry, err := parseOptionalTime(input.LicenseExpiryDate, "license_expiry_date")
	if err != nil {
		return nil, err
	}
	dateOfBirth, err := parseOptionalTime(input.DateOfBirth, "date_of_birth")
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, translateStoreError(err)
	}

	driver := &model.Driver{
		UserID:            userID,
		EmployeeID:        employeeID,
		PhoneNumber:       trimmedPtr(input.PhoneNumber),
		Address:           trimmedPtr(input.Address),
		LicenseNumber:     trimmedPtr(input.LicenseNumber),
		LicenseExpiryDate: licenseExpiry,
		DateOfBirth:       dateOfBirth,
		EmergencyContact:  trimmedPtr(input.EmergencyContact),
		IsActive:          true,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, translateStoreError(err)
	}
	return driver, nil
}

func (s *DriverService) Update(ctx context.Context, principal model.Principal, id string, input UpdateDriverInput) (*model.Driver, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	driverID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	if input.EmployeeID != nil {
		employeeID := strings.TrimSpace(*input.EmployeeID)
		if employeeID == "" {
			return nil, invalidInput("employee_id must not be empty")
		}
		driver.EmployeeID = employeeID
	}
	if input.PhoneNumber != nil {
		driver.PhoneNumber = trimmedPtr(input.PhoneNumber)
	}
	if input.Address != nil {
		driver.Address = trimmedPtr(input.Address)
	}
	if input.LicenseNumber != nil {
		driver.LicenseNumber = trimmedPtr(input.LicenseNumber)
	}
	if input.LicenseExpiryDate != nil {
		if driver.LicenseExpiryDate, err = parseOptionalTime(input.LicenseExpiryDate, "license_expiry_date"); err != nil {
			return nil, err
		}
	}
	if input.DateOfBirth != nil {
		if driver.DateOfBirth, err = parseOptionalTime(input.DateOfBirth, "date_of_birth"); err != nil {
			return nil, err
		}
	}
	if input.EmergencyContact != nil {
		driver.EmergencyContact = trimmedPtr(input.EmergencyContact)
	}
	if input.IsActive != nil {
		driver.IsActive = *input.IsActive
	}

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, translateStoreError(err)
	}
	return driver, nil
}
