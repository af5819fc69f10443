package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

// The store interfaces below are satisfied by the gorm repositories in
// internal/repository.

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error
}

type DriverStore interface {
	Create(ctx context.Context, driver *model.Driver) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Driver, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Driver, error)
	Update(ctx context.Context, driver *model.Driver) error
	List(ctx context.Context) ([]model.Driver, error)
}

type VehicleStore interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	Update(ctx context.Context, vehicle *model.Vehicle) error
	List(ctx context.Context, status *model.VehicleStatus) ([]model.Vehicle, error)
}

type AssignmentStore interface {
	Reassign(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]model.Assignment, error)
	FindActiveByDriver(ctx context.Context, driverID uuid.UUID) (*model.Assignment, error)
}

type TripStore interface {
	CreateWithPayout(ctx context.Context, trip *model.Trip, payout *model.Payout) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Trip, error)
	List(ctx context.Context, driverID *uuid.UUID) ([]model.Trip, error)
}

type PayoutStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payout, error)
	List(ctx context.Context, filter repository.PayoutListFilter) ([]model.Payout, error)
	UpdateFromStatus(ctx context.Context, payout *model.Payout, from model.PayoutStatus) (bool, error)
}

type IncidentStore interface {
	Create(ctx context.Context, incident *model.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Incident, error)
	Update(ctx context.Context, incident *model.Incident) error
	List(ctx context.Context, driverID *uuid.UUID) ([]model.Incident, error)
}

type DocumentStore interface {
	Create(ctx context.Context, document *model.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	ListByEntity(ctx context.Context, entityType model.DocumentEntityType, entityID uuid.UUID) ([]model.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FuelStore interface {
	CreateStation(ctx context.Context, station *model.FuelStation) error
	GetStation(ctx context.Context, id uuid.UUID) (*model.FuelStation, error)
	UpdateStation(ctx context.Context, station *model.FuelStation) error
	ListStations(ctx context.Context) ([]model.FuelStation, error)
	CreateRecord(ctx context.Context, record *model.FuelRecord) error
	ListRecords(ctx context.Context, filter repository.FuelRecordFilter) ([]model.FuelRecord, error)
}

type ChecklistStore interface {
	Create(ctx context.Context, checklist *model.DriverChecklist) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.DriverChecklist, error)
	Update(ctx context.Context, checklist *model.DriverChecklist) error
	List(ctx context.Context, driverID *uuid.UUID) ([]model.DriverChecklist, error)
	CreateItem(ctx context.Context, item *model.ChecklistItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*model.ChecklistItem, error)
	UpdateItem(ctx context.Context, item *model.ChecklistItem) error
	ListItems(ctx context.Context, checklistID uuid.UUID) ([]model.ChecklistItem, error)
}

type MaintenanceStore interface {
	Create(ctx context.Context, record *model.MaintenanceRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceRecord, error)
	Update(ctx context.Context, record *model.MaintenanceRecord) error
	List(ctx context.Context, vehicleID *uuid.UUID) ([]model.MaintenanceRecord, error)
	CreateTask(ctx context.Context, task *model.MaintenanceTask) error
	GetTask(ctx context.Context, id uuid.UUID) (*model.MaintenanceTask, error)
	UpdateTask(ctx context.Context, task *model.MaintenanceTask) error
	ListTasks(ctx context.Context, recordID uuid.UUID) ([]model.MaintenanceTask, error)
}

type InventoryStore interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	List(ctx context.Context) ([]model.InventoryItem, error)
	ListLowStock(ctx context.Context) ([]model.InventoryItem, error)
}

type StatsStore interface {
	Dashboard(ctx context.Context, since time.Time) (*repository.DashboardStats, error)
}
