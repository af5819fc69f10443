package service

import (
	"context"

	"fleet-service/internal/model"
)

type AssignmentService struct {
	assignmentRepo AssignmentStore
	driverRepo     DriverStore
	vehicleRepo    VehicleStore
}

func NewAssignmentService(
	assignmentRepo AssignmentStore,
	driverRepo DriverStore,
	vehicleRepo VehicleStore,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		driverRepo:     driverRepo,
		vehicleRepo:    vehicleRepo,
	}
}

type CreateAssignmentInput struct {
	DriverID  string
	VehicleID string
}

// Create gives the driver a vehicle. Any assignment the driver still holds
// is closed first, so a driver never has two active vehicles.
func (s *AssignmentService) Create(ctx context.Context, principal model.Principal, input CreateAssignmentInput) (*model.Assignment, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}

	driverID, err := parseID(input.DriverID, "driver_id")
	if err != nil {
		return nil, err
	}
	vehicleID, err := parseID(input.VehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if !driver.IsActive {
		return nil, invalidInput("driver is not active")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if vehicle.Status == model.VehicleStatusInactive {
		return nil, invalidInput("vehicle is inactive")
	}

	assignment := &model.Assignment{
		DriverID:  driverID,
		VehicleID: vehicleID,
		IsActive:  true,
	}
	if err := s.assignmentRepo.Reassign(ctx, assignment); err != nil {
		return nil, translateStoreError(err)
	}

	return assignment, nil
}

func (s *AssignmentService) List(ctx context.Context, principal model.Principal, activeOnly bool) ([]model.Assignment, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.assignmentRepo.List(ctx, activeOnly)
}

func (s *AssignmentService) Deactivate(ctx context.Context, principal model.Principal, id string) (*model.Assignment, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}

	assignmentID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if !assignment.IsActive {
		return nil, ErrConflict
	}

	if err := s.assignmentRepo.Deactivate(ctx, assignmentID); err != nil {
		return nil, err
	}

	return s.assignmentRepo.GetByID(ctx, assignmentID)
}
