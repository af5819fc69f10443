package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

type Services struct {
	Users       *service.UserService
	Drivers     *service.DriverService
	Vehicles    *service.VehicleService
	Assignments *service.AssignmentService
	Trips       *service.TripService
	Payouts     *service.PayoutService
	Dashboard   *service.DashboardService
	Incidents   *service.IncidentService
	Fuel        *service.FuelService
	Checklists  *service.ChecklistService
	Maintenance *service.MaintenanceService
	Inventory   *service.InventoryService
	Documents   *service.DocumentService
}

type Handler struct {
	users       *service.UserService
	drivers     *service.DriverService
	vehicles    *service.VehicleService
	assignments *service.AssignmentService
	trips       *service.TripService
	payouts     *service.PayoutService
	dashboard   *service.DashboardService
	incidents   *service.IncidentService
	fuel        *service.FuelService
	checklists  *service.ChecklistService
	maintenance *service.MaintenanceService
	inventory   *service.InventoryService
	documents   *service.DocumentService
	log         zerolog.Logger
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		users:       services.Users,
		drivers:     services.Drivers,
		vehicles:    services.Vehicles,
		assignments: services.Assignments,
		trips:       services.Trips,
		payouts:     services.Payouts,
		dashboard:   services.Dashboard,
		incidents:   services.Incidents,
		fuel:        services.Fuel,
		checklists:  services.Checklists,
		maintenance: services.Maintenance,
		inventory:   services.Inventory,
		documents:   services.Documents,
		log:         log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.POST("/api/calculate-payout", h.calculatePayout)

	api := r.Group("/api")
	api.Use(authMiddleware)

	api.GET("/auth/user", h.currentUser)
	api.GET("/users", h.listUsers)
	api.PATCH("/users/:id/role", h.updateUserRole)

	api.GET("/drivers", h.listDrivers)
	api.GET("/drivers/:id", h.getDriver)
	api.POST("/drivers", h.createDriver)
	api.PATCH("/drivers/:id", h.updateDriver)

	api.GET("/vehicles", h.listVehicles)
	api.POST("/vehicles", h.createVehicle)
	api.PATCH("/vehicles/:id", h.updateVehicle)

	api.GET("/assignments", h.listAssignments)
	api.POST("/assignments", h.createAssignment)
	api.PATCH("/assignments/:id/deactivate", h.deactivateAssignment)

	api.GET("/trips", h.listTrips)
	api.GET("/trips/:id", h.getTrip)
	api.POST("/trips", h.createTrip)

	api.GET("/payouts", h.listPayouts)
	api.PATCH("/payouts/:id/approve", h.approvePayout)
	api.PATCH("/payouts/:id/reject", h.rejectPayout)
	api.PATCH("/payouts/:id/paid", h.markPayoutPaid)

	api.GET("/dashboard/stats", h.dashboardStats)

	api.GET("/incidents", h.listIncidents)
	api.POST("/incidents", h.createIncident)
	api.PATCH("/incidents/:id/resolve", h.resolveIncident)

	api.GET("/fuel-stations", h.listFuelStations)
	api.POST("/fuel-stations", h.createFuelStation)
	api.PATCH("/fuel-stations/:id", h.updateFuelStation)
	api.GET("/fuel-records", h.listFuelRecords)
	api.POST("/fuel-records", h.createFuelRecord)

	api.GET("/checklists", h.listChecklists)
	api.POST("/checklists", h.createChecklist)
	api.PATCH("/checklists/:id", h.updateChecklist)
	api.GET("/checklists/:id/items", h.listChecklistItems)
	api.POST("/checklists/:id/items", h.addChecklistItem)
	api.PATCH("/checklist-items/:id", h.updateChecklistItem)

	api.GET("/maintenance", h.listMaintenance)
	api.POST("/maintenance", h.createMaintenance)
	api.PATCH("/maintenance/:id", h.updateMaintenance)
	api.GET("/maintenance/:id/tasks", h.listMaintenanceTasks)
	api.POST("/maintenance/:id/tasks", h.addMaintenanceTask)
	api.PATCH("/maintenance-tasks/:id", h.updateMaintenanceTask)

	api.GET("/inventory", h.listInventory)
	api.GET("/inventory/low-stock", h.lowStockInventory)
	api.POST("/inventory", h.createInventoryItem)
	api.PATCH("/inventory/:id", h.updateInventoryItem)

	api.POST("/documents/upload", h.uploadDocuments)
	api.GET("/documents", h.listDocuments)
	api.GET("/documents/:id/view", h.viewDocument)
	api.GET("/documents/:id/download", h.downloadDocument)
	api.GET("/documents/:id/:entityId", h.listEntityDocuments)
	api.DELETE("/documents/:id", h.deleteDocument)
}

// principal answers 401 itself when the request carries no principal.
func principal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
	}
	return p, ok
}

// requireAdmin answers 403 before the body is read.
func requireAdmin(c *gin.Context, p model.Principal) bool {
	if !p.IsAdmin() {
		c.JSON(http.StatusForbidden, errorResponse(service.ErrPermissionDenied.Error()))
		return false
	}
	return true
}

func requireStaff(c *gin.Context, p model.Principal) bool {
	if !p.IsStaff() {
		c.JSON(http.StatusForbidden, errorResponse(service.ErrPermissionDenied.Error()))
		return false
	}
	return true
}

// bind decodes the JSON body, answering 400 on failure.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return false
	}
	return true
}

func optionalQuery(c *gin.Context, key string) *string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	return &raw
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
