package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
)

type MaintenanceService struct {
	maintenanceRepo MaintenanceStore
	vehicleRepo     VehicleStore
	now             func() time.Time
}

func NewMaintenanceService(maintenanceRepo MaintenanceStore, vehicleRepo VehicleStore) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
		now:             time.Now,
	}
}

var maintenanceTypes = map[string]bool{"scheduled": true, "repair": true, "inspection": true, "service": true}

type MaintenanceInput struct {
	VehicleID       *string
	MaintenanceType *string
	Description     *string
	Status          *string
	ScheduledDate   *string
	Cost            *decimal.Decimal
	ServiceProvider *string
	OdometerReading *int
	NextServiceDue  *string
	Notes           *string
}

type MaintenanceTaskInput struct {
	TaskName          *string
	Description       *string
	IsCompleted       *bool
	AssignedTo        *string
	CompletedBy       *string
	EstimatedDuration *int
	ActualDuration    *int
	PartsUsed         *string
	Cost              *decimal.Decimal
}

func (s *MaintenanceService) List(ctx context.Context, principal model.Principal, vehicleID *string) ([]model.MaintenanceRecord, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	vid, err := parseOptionalID(vehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}
	return s.maintenanceRepo.List(ctx, vid)
}

func (s *MaintenanceService) Create(ctx context.Context, principal model.Principal, input MaintenanceInput) (*model.MaintenanceRecord, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	if input.VehicleID == nil || input.MaintenanceType == nil || input.Description == nil {
		return nil, invalidInput("vehicle_id, maintenance_type and description are required")
	}

	vehicleID, err := parseID(*input.VehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, translateStoreError(err)
	}

	record := &model.MaintenanceRecord{
		VehicleID: vehicleID,
		Status:    model.MaintenanceStatusScheduled,
	}
	if err := s.applyRecordInput(record, input); err != nil {
		return nil, err
	}

	if err := s.maintenanceRepo.Create(ctx, record); err != nil {
		return nil, translateStoreError(err)
	}
	return record, nil
}

func (s *MaintenanceService) Update(ctx context.Context, principal model.Principal, id string, input MaintenanceInput) (*model.MaintenanceRecord, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	if input.VehicleID != nil {
		return nil, invalidInput("vehicle_id cannot be changed")
	}

	recordID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	record, err := s.maintenanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	if err := s.applyRecordInput(record, input); err != nil {
		return nil, err
	}
	if err := s.maintenanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *MaintenanceService) ListTasks(ctx context.Context, principal model.Principal, recordID string) ([]model.MaintenanceTask, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	id, err := parseID(recordID, "id")
	if err != nil {
		return nil, err
	}
	if _, err := s.maintenanceRepo.GetByID(ctx, id); err != nil {
		return nil, translateStoreError(err)
	}
	return s.maintenanceRepo.ListTasks(ctx, id)
}

func (s *MaintenanceService) AddTask(ctx context.Context, principal model.Principal, recordID string, input MaintenanceTaskInput) (*model.MaintenanceTask, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	id, err := parseID(recordID, "id")
	if err != nil {
		return nil, err
	}
	if _, err := s.maintenanceRepo.GetByID(ctx, id); err != nil {
		return nil, translateStoreError(err)
	}
	if input.TaskName == nil {
		return nil, invalidInput("task_name is required")
	}

	task := &model.MaintenanceTask{MaintenanceRecordID: id}
	if err := applyTaskInput(task, input); err != nil {
		return nil, err
	}
	if err := s.maintenanceRepo.CreateTask(ctx, task); err != nil {
		return nil, translateStoreError(err)
	}
	return task, nil
}

func (s *MaintenanceService) UpdateTask(ctx context.Context, principal model.Principal, id string, input MaintenanceTaskInput) (*model.MaintenanceTask, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}
	taskID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	task, err := s.maintenanceRepo.GetTask(ctx, taskID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	if err := applyTaskInput(task, input); err != nil {
		return nil, err
	}
	if err := s.maintenanceRepo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// applyRecordInput copies the set fields onto record. Moving to completed
// stamps completed_date.
func (s *MaintenanceService) applyRecordInput(record *model.MaintenanceRecord, input MaintenanceInput) error {
	var err error
	if input.MaintenanceType != nil {
		mt := strings.ToLower(strings.TrimSpace(*input.MaintenanceType))
		if !maintenanceTypes[mt] {
			return invalidInput("unknown maintenance_type %q", *input.MaintenanceType)
		}
		record.MaintenanceType = mt
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return invalidInput("description must not be empty")
		}
		record.Description = description
	}
	if input.Status != nil {
		status := model.MaintenanceStatus(strings.ToLower(strings.TrimSpace(*input.Status)))
		if !status.Valid() {
			return invalidInput("unknown maintenance status %q", *input.Status)
		}
		if status == model.MaintenanceStatusCompleted && record.Status != model.MaintenanceStatusCompleted {
			now := s.now()
			record.CompletedDate = &now
		}
		record.Status = status
	}
	if input.ScheduledDate != nil {
		if record.ScheduledDate, err = parseOptionalTime(input.ScheduledDate, "scheduled_date"); err != nil {
			return err
		}
	}
	if input.NextServiceDue != nil {
		if record.NextServiceDue, err = parseOptionalTime(input.NextServiceDue, "next_service_due"); err != nil {
			return err
		}
	}
	if input.Cost != nil {
		if err := checkAmount(*input.Cost, "cost"); err != nil {
			return err
		}
		cost := input.Cost.Round(2)
		record.Cost = &cost
	}
	if input.ServiceProvider != nil {
		record.ServiceProvider = trimmedPtr(input.ServiceProvider)
	}
	if input.OdometerReading != nil {
		record.OdometerReading = input.OdometerReading
	}
	if input.Notes != nil {
		record.Notes = trimmedPtr(input.Notes)
	}
	return nil
}

func applyTaskInput(task *model.MaintenanceTask, input MaintenanceTaskInput) error {
	if input.TaskName != nil {
		name := strings.TrimSpace(*input.TaskName)
		if name == "" {
			return invalidInput("task_name must not be empty")
		}
		task.TaskName = name
	}
	if input.Description != nil {
		task.Description = trimmedPtr(input.Description)
	}
	if input.IsCompleted != nil {
		task.IsCompleted = *input.IsCompleted
	}
	if input.AssignedTo != nil {
		task.AssignedTo = trimmedPtr(input.AssignedTo)
	}
	if input.CompletedBy != nil {
		task.CompletedBy = trimmedPtr(input.CompletedBy)
	}
	if input.EstimatedDuration != nil {
		task.EstimatedDuration = input.EstimatedDuration
	}
	if input.ActualDuration != nil {
		task.ActualDuration = input.ActualDuration
	}
	if input.PartsUsed != nil {
		task.PartsUsed = trimmedPtr(input.PartsUsed)
	}
	if input.Cost != nil {
		if err := checkAmount(*input.Cost, "cost"); err != nil {
			return err
		}
		cost := input.Cost.Round(2)
		task.Cost = &cost
	}
	return nil
}
