// Package servicetest holds in-memory stores for exercising services and
// handlers without a database.
package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

// Store implements every store interface the services depend on. Records
// are copied on the way in and out, as a database would.
type Store struct {
	mu sync.Mutex

	Users       map[uuid.UUID]model.User
	Drivers     map[uuid.UUID]model.Driver
	Vehicles    map[uuid.UUID]model.Vehicle
	Assignments map[uuid.UUID]model.Assignment
	Trips       map[uuid.UUID]model.Trip
	Payouts     map[uuid.UUID]model.Payout
	Checklists  map[uuid.UUID]model.DriverChecklist
	Maintenance map[uuid.UUID]model.MaintenanceRecord
	Inventory   map[uuid.UUID]model.InventoryItem
	Documents   map[uuid.UUID]model.Document
	Incidents   map[uuid.UUID]model.Incident
	Stations    map[uuid.UUID]model.FuelStation
	FuelRecords map[uuid.UUID]model.FuelRecord

	Stats      repository.DashboardStats
	StatsCalls int
}

func New() *Store {
	return &Store{
		Users:       map[uuid.UUID]model.User{},
		Drivers:     map[uuid.UUID]model.Driver{},
		Vehicles:    map[uuid.UUID]model.Vehicle{},
		Assignments: map[uuid.UUID]model.Assignment{},
		Trips:       map[uuid.UUID]model.Trip{},
		Payouts:     map[uuid.UUID]model.Payout{},
		Checklists:  map[uuid.UUID]model.DriverChecklist{},
		Maintenance: map[uuid.UUID]model.MaintenanceRecord{},
		Inventory:   map[uuid.UUID]model.InventoryItem{},
		Documents:   map[uuid.UUID]model.Document{},
		Incidents:   map[uuid.UUID]model.Incident{},
		Stations:    map[uuid.UUID]model.FuelStation{},
		FuelRecords: map[uuid.UUID]model.FuelRecord{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func get[T any](s *Store, m map[uuid.UUID]T, id uuid.UUID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := m[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func put[T any](s *Store, m map[uuid.UUID]T, id uuid.UUID, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m[id] = v
}

func filter[T any](s *Store, m map[uuid.UUID]T, keep func(T) bool) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Users.

type Users struct{ *Store }

func (u Users) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return get(u.Store, u.Store.Users, id)
}

// Upsert enforces the unique email index the way Postgres does.
func (u Users) Upsert(_ context.Context, user *model.User) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if user.Email != nil {
		for id, other := range u.Store.Users {
			if id != user.ID && other.Email != nil && *other.Email == *user.Email {
				return nil, gorm.ErrDuplicatedKey
			}
		}
	}

	existing, ok := u.Store.Users[user.ID]
	if !ok {
		existing = *user
	} else if user.Email != nil {
		email := *user.Email
		existing.Email = &email
	}
	u.Store.Users[user.ID] = existing
	return &existing, nil
}

func (u Users) List(_ context.Context) ([]model.User, error) {
	return filter[model.User](u.Store, u.Store.Users, nil), nil
}

func (u Users) UpdateRole(_ context.Context, id uuid.UUID, role model.Role) error {
	user, err := get(u.Store, u.Store.Users, id)
	if err != nil {
		return err
	}
	user.Role = role
	put(u.Store, u.Store.Users, id, *user)
	return nil
}

// Drivers.

type Drivers struct{ *Store }

func (d Drivers) Create(_ context.Context, driver *model.Driver) error {
	ensureID(&driver.ID)
	put(d.Store, d.Store.Drivers, driver.ID, *driver)
	return nil
}

func (d Drivers) GetByID(_ context.Context, id uuid.UUID) (*model.Driver, error) {
	return get(d.Store, d.Store.Drivers, id)
}

func (d Drivers) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Driver, error) {
	found := filter(d.Store, d.Store.Drivers, func(v model.Driver) bool { return v.UserID == userID })
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (d Drivers) Update(_ context.Context, driver *model.Driver) error {
	put(d.Store, d.Store.Drivers, driver.ID, *driver)
	return nil
}

func (d Drivers) List(_ context.Context) ([]model.Driver, error) {
	return filter[model.Driver](d.Store, d.Store.Drivers, nil), nil
}

// Vehicles.

type Vehicles struct{ *Store }

func (v Vehicles) Create(_ context.Context, vehicle *model.Vehicle) error {
	ensureID(&vehicle.ID)
	if vehicle.Status == "" {
		vehicle.Status = model.VehicleStatusActive
	}
	put(v.Store, v.Store.Vehicles, vehicle.ID, *vehicle)
	return nil
}

func (v Vehicles) GetByID(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return get(v.Store, v.Store.Vehicles, id)
}

func (v Vehicles) Update(_ context.Context, vehicle *model.Vehicle) error {
	put(v.Store, v.Store.Vehicles, vehicle.ID, *vehicle)
	return nil
}

func (v Vehicles) List(_ context.Context, status *model.VehicleStatus) ([]model.Vehicle, error) {
	return filter(v.Store, v.Store.Vehicles, func(x model.Vehicle) bool {
		return status == nil || x.Status == *status
	}), nil
}

// Assignments.

type Assignments struct{ *Store }

func (a Assignments) Reassign(_ context.Context, assignment *model.Assignment) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := time.Now()
	for id, existing := range a.Store.Assignments {
		if existing.DriverID == assignment.DriverID && existing.IsActive {
			existing.IsActive = false
			existing.UnassignedAt = &now
			a.Store.Assignments[id] = existing
		}
	}
	ensureID(&assignment.ID)
	assignment.AssignedAt = now
	a.Store.Assignments[assignment.ID] = *assignment
	return nil
}

func (a Assignments) GetByID(_ context.Context, id uuid.UUID) (*model.Assignment, error) {
	return get(a.Store, a.Store.Assignments, id)
}

func (a Assignments) Deactivate(_ context.Context, id uuid.UUID) error {
	assignment, err := get(a.Store, a.Store.Assignments, id)
	if err != nil {
		return err
	}
	now := time.Now()
	assignment.IsActive = false
	assignment.UnassignedAt = &now
	put(a.Store, a.Store.Assignments, id, *assignment)
	return nil
}

func (a Assignments) List(_ context.Context, activeOnly bool) ([]model.Assignment, error) {
	return filter(a.Store, a.Store.Assignments, func(x model.Assignment) bool {
		return !activeOnly || x.IsActive
	}), nil
}

func (a Assignments) FindActiveByDriver(_ context.Context, driverID uuid.UUID) (*model.Assignment, error) {
	found := filter(a.Store, a.Store.Assignments, func(x model.Assignment) bool {
		return x.DriverID == driverID && x.IsActive
	})
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// Trips.

type Trips struct{ *Store }

func (t Trips) CreateWithPayout(_ context.Context, trip *model.Trip, payout *model.Payout) error {
	ensureID(&trip.ID)
	ensureID(&payout.ID)
	payout.TripID = trip.ID
	put(t.Store, t.Store.Trips, trip.ID, *trip)
	put(t.Store, t.Store.Payouts, payout.ID, *payout)
	return nil
}

func (t Trips) GetByID(_ context.Context, id uuid.UUID) (*model.Trip, error) {
	return get(t.Store, t.Store.Trips, id)
}

func (t Trips) List(_ context.Context, driverID *uuid.UUID) ([]model.Trip, error) {
	return filter(t.Store, t.Store.Trips, func(x model.Trip) bool {
		return driverID == nil || x.DriverID == *driverID
	}), nil
}

// Payouts.

type Payouts struct{ *Store }

func (p Payouts) GetByID(_ context.Context, id uuid.UUID) (*model.Payout, error) {
	return get(p.Store, p.Store.Payouts, id)
}

func (p Payouts) List(_ context.Context, f repository.PayoutListFilter) ([]model.Payout, error) {
	return filter(p.Store, p.Store.Payouts, func(x model.Payout) bool {
		if f.DriverID != nil && x.DriverID != *f.DriverID {
			return false
		}
		return f.Status == nil || x.Status == *f.Status
	}), nil
}

func (p Payouts) UpdateFromStatus(_ context.Context, payout *model.Payout, from model.PayoutStatus) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	current, ok := p.Store.Payouts[payout.ID]
	if !ok || current.Status != from {
		return false, nil
	}
	p.Store.Payouts[payout.ID] = *payout
	return true, nil
}

// Incidents.

type Incidents struct{ *Store }

func (i Incidents) Create(_ context.Context, incident *model.Incident) error {
	ensureID(&incident.ID)
	put(i.Store, i.Store.Incidents, incident.ID, *incident)
	return nil
}

func (i Incidents) GetByID(_ context.Context, id uuid.UUID) (*model.Incident, error) {
	return get(i.Store, i.Store.Incidents, id)
}

func (i Incidents) Update(_ context.Context, incident *model.Incident) error {
	put(i.Store, i.Store.Incidents, incident.ID, *incident)
	return nil
}

func (i Incidents) List(_ context.Context, driverID *uuid.UUID) ([]model.Incident, error) {
	return filter(i.Store, i.Store.Incidents, func(x model.Incident) bool {
		return driverID == nil || (x.DriverID != nil && *x.DriverID == *driverID)
	}), nil
}

// Fuel.

type Fuel struct{ *Store }

func (f Fuel) CreateStation(_ context.Context, station *model.FuelStation) error {
	ensureID(&station.ID)
	put(f.Store, f.Store.Stations, station.ID, *station)
	return nil
}

func (f Fuel) GetStation(_ context.Context, id uuid.UUID) (*model.FuelStation, error) {
	return get(f.Store, f.Store.Stations, id)
}

func (f Fuel) UpdateStation(_ context.Context, station *model.FuelStation) error {
	put(f.Store, f.Store.Stations, station.ID, *station)
	return nil
}

func (f Fuel) ListStations(_ context.Context) ([]model.FuelStation, error) {
	return filter[model.FuelStation](f.Store, f.Store.Stations, nil), nil
}

func (f Fuel) CreateRecord(_ context.Context, record *model.FuelRecord) error {
	ensureID(&record.ID)
	put(f.Store, f.Store.FuelRecords, record.ID, *record)
	return nil
}

func (f Fuel) ListRecords(_ context.Context, rf repository.FuelRecordFilter) ([]model.FuelRecord, error) {
	return filter(f.Store, f.Store.FuelRecords, func(x model.FuelRecord) bool {
		if rf.DriverID != nil && x.DriverID != *rf.DriverID {
			return false
		}
		return rf.VehicleID == nil || x.VehicleID == *rf.VehicleID
	}), nil
}

// Checklists.

type Checklists struct {
	*Store
	items map[uuid.UUID]model.ChecklistItem
}

func NewChecklists(s *Store) *Checklists {
	return &Checklists{Store: s, items: map[uuid.UUID]model.ChecklistItem{}}
}

func (c *Checklists) Create(_ context.Context, checklist *model.DriverChecklist) error {
	ensureID(&checklist.ID)
	put(c.Store, c.Store.Checklists, checklist.ID, *checklist)
	return nil
}

func (c *Checklists) GetByID(_ context.Context, id uuid.UUID) (*model.DriverChecklist, error) {
	return get(c.Store, c.Store.Checklists, id)
}

func (c *Checklists) Update(_ context.Context, checklist *model.DriverChecklist) error {
	put(c.Store, c.Store.Checklists, checklist.ID, *checklist)
	return nil
}

func (c *Checklists) List(_ context.Context, driverID *uuid.UUID) ([]model.DriverChecklist, error) {
	return filter(c.Store, c.Store.Checklists, func(x model.DriverChecklist) bool {
		return driverID == nil || x.DriverID == *driverID
	}), nil
}

func (c *Checklists) CreateItem(_ context.Context, item *model.ChecklistItem) error {
	ensureID(&item.ID)
	put(c.Store, c.items, item.ID, *item)
	return nil
}

func (c *Checklists) GetItem(_ context.Context, id uuid.UUID) (*model.ChecklistItem, error) {
	return get(c.Store, c.items, id)
}

func (c *Checklists) UpdateItem(_ context.Context, item *model.ChecklistItem) error {
	put(c.Store, c.items, item.ID, *item)
	return nil
}

func (c *Checklists) ListItems(_ context.Context, checklistID uuid.UUID) ([]model.ChecklistItem, error) {
	return filter(c.Store, c.items, func(x model.ChecklistItem) bool { return x.ChecklistID == checklistID }), nil
}

// Maintenance.

type Maintenance struct {
	*Store
	tasks map[uuid.UUID]model.MaintenanceTask
}

func NewMaintenance(s *Store) *Maintenance {
	return &Maintenance{Store: s, tasks: map[uuid.UUID]model.MaintenanceTask{}}
}

func (m *Maintenance) Create(_ context.Context, record *model.MaintenanceRecord) error {
	ensureID(&record.ID)
	put(m.Store, m.Store.Maintenance, record.ID, *record)
	return nil
}

func (m *Maintenance) GetByID(_ context.Context, id uuid.UUID) (*model.MaintenanceRecord, error) {
	return get(m.Store, m.Store.Maintenance, id)
}

func (m *Maintenance) Update(_ context.Context, record *model.MaintenanceRecord) error {
	put(m.Store, m.Store.Maintenance, record.ID, *record)
	return nil
}

func (m *Maintenance) List(_ context.Context, vehicleID *uuid.UUID) ([]model.MaintenanceRecord, error) {
	return filter(m.Store, m.Store.Maintenance, func(x model.MaintenanceRecord) bool {
		return vehicleID == nil || x.VehicleID == *vehicleID
	}), nil
}

func (m *Maintenance) CreateTask(_ context.Context, task *model.MaintenanceTask) error {
	ensureID(&task.ID)
	put(m.Store, m.tasks, task.ID, *task)
	return nil
}

func (m *Maintenance) GetTask(_ context.Context, id uuid.UUID) (*model.MaintenanceTask, error) {
	return get(m.Store, m.tasks, id)
}

func (m *Maintenance) UpdateTask(_ context.Context, task *model.MaintenanceTask) error {
	put(m.Store, m.tasks, task.ID, *task)
	return nil
}

func (m *Maintenance) ListTasks(_ context.Context, recordID uuid.UUID) ([]model.MaintenanceTask, error) {
	return filter(m.Store, m.tasks, func(x model.MaintenanceTask) bool { return x.MaintenanceRecordID == recordID }), nil
}

// Inventory.

type Inventory struct{ *Store }

func (i Inventory) Create(_ context.Context, item *model.InventoryItem) error {
	ensureID(&item.ID)
	put(i.Store, i.Store.Inventory, item.ID, *item)
	return nil
}

func (i Inventory) GetByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	return get(i.Store, i.Store.Inventory, id)
}

func (i Inventory) Update(_ context.Context, item *model.InventoryItem) error {
	put(i.Store, i.Store.Inventory, item.ID, *item)
	return nil
}

func (i Inventory) List(_ context.Context) ([]model.InventoryItem, error) {
	return filter[model.InventoryItem](i.Store, i.Store.Inventory, nil), nil
}

func (i Inventory) ListLowStock(_ context.Context) ([]model.InventoryItem, error) {
	return filter(i.Store, i.Store.Inventory, func(x model.InventoryItem) bool {
		return x.IsActive && x.LowOnStock()
	}), nil
}

// Documents.

type Documents struct{ *Store }

func (d Documents) Create(_ context.Context, document *model.Document) error {
	ensureID(&document.ID)
	put(d.Store, d.Store.Documents, document.ID, *document)
	return nil
}

func (d Documents) GetByID(_ context.Context, id uuid.UUID) (*model.Document, error) {
	return get(d.Store, d.Store.Documents, id)
}

func (d Documents) ListByEntity(_ context.Context, entityType model.DocumentEntityType, entityID uuid.UUID) ([]model.Document, error) {
	return filter(d.Store, d.Store.Documents, func(x model.Document) bool {
		return x.EntityType == entityType && x.EntityID == entityID
	}), nil
}

func (d Documents) Delete(_ context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.Store.Documents, id)
	return nil
}

// Stats.

type Stats struct{ *Store }

func (s Stats) Dashboard(_ context.Context, _ time.Time) (*repository.DashboardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StatsCalls++
	stats := s.Store.Stats
	return &stats, nil
}
