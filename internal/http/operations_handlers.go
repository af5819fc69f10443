package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fleet-service/internal/service"
)

func (h *Handler) listIncidents(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	incidents, err := h.incidents.List(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(incidents))
}

func (h *Handler) createIncident(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req struct {
		TripID       *string          `json:"trip_id"`
		VehicleID    *string          `json:"vehicle_id"`
		IncidentType string           `json:"incident_type" binding:"required"`
		Description  string           `json:"description" binding:"required"`
		DamageAmount *decimal.Decimal `json:"damage_amount"`
	}
	if !bind(c, &req) {
		return
	}

	incident, err := h.incidents.Create(c.Request.Context(), p, service.CreateIncidentInput{
		TripID:       req.TripID,
		VehicleID:    req.VehicleID,
		IncidentType: req.IncidentType,
		Description:  req.Description,
		DamageAmount: req.DamageAmount,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(incident))
}

func (h *Handler) resolveIncident(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	incident, err := h.incidents.Resolve(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(incident))
}

type fuelStationRequest struct {
	Name            *string `json:"name"`
	Location        *string `json:"location"`
	ContactPerson   *string `json:"contact_person"`
	Phone           *string `json:"phone"`
	ContractDetails *string `json:"contract_details"`
	IsActive        *bool   `json:"is_active"`
}

func (r fuelStationRequest) input() service.FuelStationInput {
	return service.FuelStationInput{
		Name:            r.Name,
		Location:        r.Location,
		ContactPerson:   r.ContactPerson,
		Phone:           r.Phone,
		ContractDetails: r.ContractDetails,
		IsActive:        r.IsActive,
	}
}

func (h *Handler) listFuelStations(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	stations, err := h.fuel.ListStations(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(stations))
}

func (h *Handler) createFuelStation(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireAdmin(c, p) {
		return
	}

	var req fuelStationRequest
	if !bind(c, &req) {
		return
	}

	station, err := h.fuel.CreateStation(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(station))
}

func (h *Handler) updateFuelStation(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireAdmin(c, p) {
		return
	}

	var req fuelStationRequest
	if !bind(c, &req) {
		return
	}

	station, err := h.fuel.UpdateStation(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(station))
}

func (h *Handler) listFuelRecords(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	records, err := h.fuel.ListRecords(c.Request.Context(), p, optionalQuery(c, "vehicle_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(records))
}

func (h *Handler) createFuelRecord(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req struct {
		FuelStationID   *string          `json:"fuel_station_id"`
		RecordType      string           `json:"record_type"`
		FuelType        string           `json:"fuel_type" binding:"required"`
		Quantity        *decimal.Decimal `json:"quantity" binding:"required"`
		PricePerLiter   *decimal.Decimal `json:"price_per_liter" binding:"required"`
		TotalCost       *decimal.Decimal `json:"total_cost"`
		OdometerReading *int             `json:"odometer_reading"`
		ReceiptNumber   *string          `json:"receipt_number"`
		Notes           *string          `json:"notes"`
		RefuelDate      *string          `json:"refuel_date"`
	}
	if !bind(c, &req) {
		return
	}

	record, err := h.fuel.CreateRecord(c.Request.Context(), p, service.CreateFuelRecordInput{
		FuelStationID:   req.FuelStationID,
		RecordType:      req.RecordType,
		FuelType:        req.FuelType,
		Quantity:        *req.Quantity,
		PricePerLiter:   *req.PricePerLiter,
		TotalCost:       req.TotalCost,
		OdometerReading: req.OdometerReading,
		ReceiptNumber:   req.ReceiptNumber,
		Notes:           req.Notes,
		RefuelDate:      req.RefuelDate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(record))
}

func (h *Handler) listChecklists(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	checklists, err := h.checklists.List(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(checklists))
}

func (h *Handler) createChecklist(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req struct {
		ChecklistType string  `json:"checklist_type" binding:"required"`
		Notes         *string `json:"notes"`
	}
	if !bind(c, &req) {
		return
	}

	checklist, err := h.checklists.Create(c.Request.Context(), p, service.CreateChecklistInput{
		ChecklistType: req.ChecklistType,
		Notes:         req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(checklist))
}

func (h *Handler) updateChecklist(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req struct {
		Status *string `json:"status"`
		Notes  *string `json:"notes"`
	}
	if !bind(c, &req) {
		return
	}

	checklist, err := h.checklists.Update(c.Request.Context(), p, c.Param("id"), service.UpdateChecklistInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(checklist))
}

type checklistItemRequest struct {
	ItemName     *string `json:"item_name"`
	ItemCategory *string `json:"item_category"`
	IsChecked    *bool   `json:"is_checked"`
	Condition    *string `json:"condition"`
	Quantity     *int    `json:"quantity"`
	Notes        *string `json:"notes"`
	ImageURL     *string `json:"image_url"`
}

func (r checklistItemRequest) input() service.ChecklistItemInput {
	return service.ChecklistItemInput{
		ItemName:     r.ItemName,
		ItemCategory: r.ItemCategory,
		IsChecked:    r.IsChecked,
		Condition:    r.Condition,
		Quantity:     r.Quantity,
		Notes:        r.Notes,
		ImageURL:     r.ImageURL,
	}
}

func (h *Handler) listChecklistItems(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	items, err := h.checklists.ListItems(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(items))
}

func (h *Handler) addChecklistItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req checklistItemRequest
	if !bind(c, &req) {
		return
	}

	item, err := h.checklists.AddItem(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(item))
}

func (h *Handler) updateChecklistItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req checklistItemRequest
	if !bind(c, &req) {
		return
	}

	item, err := h.checklists.UpdateItem(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(item))
}

type maintenanceRequest struct {
	VehicleID       *string          `json:"vehicle_id"`
	MaintenanceType *string          `json:"maintenance_type"`
	Description     *string          `json:"description"`
	Status          *string          `json:"status"`
	ScheduledDate   *string          `json:"scheduled_date"`
	Cost            *decimal.Decimal `json:"cost"`
	ServiceProvider *string          `json:"service_provider"`
	OdometerReading *int             `json:"odometer_reading"`
	NextServiceDue  *string          `json:"next_service_due"`
	Notes           *string          `json:"notes"`
}

func (r maintenanceRequest) input() service.MaintenanceInput {
	return service.MaintenanceInput{
		VehicleID:       r.VehicleID,
		MaintenanceType: r.MaintenanceType,
		Description:     r.Description,
		Status:          r.Status,
		ScheduledDate:   r.ScheduledDate,
		Cost:            r.Cost,
		ServiceProvider: r.ServiceProvider,
		OdometerReading: r.OdometerReading,
		NextServiceDue:  r.NextServiceDue,
		Notes:           r.Notes,
	}
}

func (h *Handler) listMaintenance(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	records, err := h.maintenance.List(c.Request.Context(), p, optionalQuery(c, "vehicle_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(records))
}

func (h *Handler) createMaintenance(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireStaff(c, p) {
		return
	}

	var req maintenanceRequest
	if !bind(c, &req) {
		return
	}

	record, err := h.maintenance.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(record))
}

func (h *Handler) updateMaintenance(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireStaff(c, p) {
		return
	}

	var req maintenanceRequest
	if !bind(c, &req) {
		return
	}

	record, err := h.maintenance.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(record))
}

type maintenanceTaskRequest struct {
	TaskName          *string          `json:"task_name"`
	Description       *string          `json:"description"`
	IsCompleted       *bool            `json:"is_completed"`
	AssignedTo        *string          `json:"assigned_to"`
	CompletedBy       *string          `json:"completed_by"`
	EstimatedDuration *int             `json:"estimated_duration"`
	ActualDuration    *int             `json:"actual_duration"`
	PartsUsed         *string          `json:"parts_used"`
	Cost              *decimal.Decimal `json:"cost"`
}

func (r maintenanceTaskRequest) input() service.MaintenanceTaskInput {
	return service.MaintenanceTaskInput{
		TaskName:          r.TaskName,
		Description:       r.Description,
		IsCompleted:       r.IsCompleted,
		AssignedTo:        r.AssignedTo,
		CompletedBy:       r.CompletedBy,
		EstimatedDuration: r.EstimatedDuration,
		ActualDuration:    r.ActualDuration,
		PartsUsed:         r.PartsUsed,
		Cost:              r.Cost,
	}
}

func (h *Handler) listMaintenanceTasks(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	tasks, err := h.maintenance.ListTasks(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(tasks))
}

func (h *Handler) addMaintenanceTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireStaff(c, p) {
		return
	}

	var req maintenanceTaskRequest
	if !bind(c, &req) {
		return
	}

	task, err := h.maintenance.AddTask(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(task))
}

func (h *Handler) updateMaintenanceTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireStaff(c, p) {
		return
	}

	var req maintenanceTaskRequest
	if !bind(c, &req) {
		return
	}

	task, err := h.maintenance.UpdateTask(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(task))
}

type inventoryRequest struct {
	ItemName     *string          `json:"item_name"`
	ItemCode     *string          `json:"item_code"`
	Category     *string          `json:"category"`
	CurrentStock *int             `json:"current_stock"`
	MinimumStock *int             `json:"minimum_stock"`
	MaxStock     *int             `json:"max_stock"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Location     *string          `json:"location"`
	Description  *string          `json:"description"`
	IsActive     *bool            `json:"is_active"`
}

func (r inventoryRequest) input() service.InventoryItemInput {
	return service.InventoryItemInput{
		ItemName:     r.ItemName,
		ItemCode:     r.ItemCode,
		Category:     r.Category,
		CurrentStock: r.CurrentStock,
		MinimumStock: r.MinimumStock,
		MaxStock:     r.MaxStock,
		UnitPrice:    r.UnitPrice,
		Location:     r.Location,
		Description:  r.Description,
		IsActive:     r.IsActive,
	}
}

func (h *Handler) listInventory(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	items, err := h.inventory.List(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(items))
}

func (h *Handler) lowStockInventory(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	items, err := h.inventory.LowStock(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(items))
}

func (h *Handler) createInventoryItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireAdmin(c, p) {
		return
	}

	var req inventoryRequest
	if !bind(c, &req) {
		return
	}

	item, err := h.inventory.Create(c.Request.Context(), p, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(item))
}

func (h *Handler) updateInventoryItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireStaff(c, p) {
		return
	}

	var req inventoryRequest
	if !bind(c, &req) {
		return
	}

	item, err := h.inventory.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(item))
}
