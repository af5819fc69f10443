package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
	"fleet-service/internal/service/servicetest"
)

func adminPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
}

func managerPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleManager}
}

// seedDriver stores an active driver and returns a principal acting as it.
func seedDriver(t *testing.T, store *servicetest.Store) (model.Principal, model.Driver) {
	t.Helper()
	driver := model.Driver{UserID: uuid.New(), EmployeeID: "EMP-" + uuid.NewString()[:8], IsActive: true}
	require.NoError(t, servicetest.Drivers{Store: store}.Create(context.Background(), &driver))
	driverID := driver.ID
	return model.Principal{UserID: driver.UserID, Role: model.RoleDriver, DriverID: &driverID}, driver
}

func seedVehicle(t *testing.T, store *servicetest.Store, status model.VehicleStatus) model.Vehicle {
	t.Helper()
	vehicle := model.Vehicle{RegistrationNumber: "KAA" + uuid.NewString()[:4], Make: "Toyota", Model: "Probox", Status: status}
	require.NoError(t, servicetest.Vehicles{Store: store}.Create(context.Background(), &vehicle))
	return vehicle
}

func assignVehicle(t *testing.T, store *servicetest.Store, driver model.Driver, vehicle model.Vehicle) {
	t.Helper()
	assignment := model.Assignment{DriverID: driver.ID, VehicleID: vehicle.ID, IsActive: true}
	require.NoError(t, servicetest.Assignments{Store: store}.Reassign(context.Background(), &assignment))
}
