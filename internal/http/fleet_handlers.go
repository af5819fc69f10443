package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/service"
)

type vehicleRequest struct {
	RegistrationNumber  *string `json:"registration_number"`
	Make                *string `json:"make"`
	Model               *string `json:"model"`
	Year                *int    `json:"year"`
	Capacity            *int    `json:"capacity"`
	FuelType            *string `json:"fuel_type"`
	InsuranceNumber     *string `json:"insurance_number"`
	InsuranceExpiryDate *string `json:"insurance_expiry_date"`
	PermitNumber        *string `json:"permit_number"`
	PermitExpiryDate    *string `json:"permit_expiry_date"`
	Status              *string `json:"status"`
}

func (h *Handler) listVehicles(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	vehicles, err := h.vehicles.List(c.Request.Context(), p, optionalQuery(c, "status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(vehicles))
}

func (h *Handler) createVehicle(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireAdmin(c, p) {
		return
	}

	var req struct {
		vehicleRequest
		RegistrationNumber string `json:"registration_number" binding:"required"`
		Make               string `json:"make" binding:"required"`
		Model              string `json:"model" binding:"required"`
	}
	if !bind(c, &req) {
		return
	}

	vehicle, err := h.vehicles.Create(c.Request.Context(), p, service.CreateVehicleInput{
		RegistrationNumber:  req.RegistrationNumber,
		Make:                req.Make,
		Model:               req.Model,
		Year:                req.Year,
		Capacity:            req.Capacity,
		FuelType:            req.FuelType,
		InsuranceNumber:     req.InsuranceNumber,
		InsuranceExpiryDate: req.InsuranceExpiryDate,
		PermitNumber:        req.PermitNumber,
		PermitExpiryDate:    req.PermitExpiryDate,
		Status:              req.Status,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) updateVehicle(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireAdmin(c, p) {
		return
	}

	var req vehicleRequest
	if !bind(c, &req) {
		return
	}

	vehicle, err := h.vehicles.Update(c.Request.Context(), p, c.Param("id"), service.UpdateVehicleInput{
		RegistrationNumber:  req.RegistrationNumber,
		Make:                req.Make,
		Model:               req.Model,
		Year:                req.Year,
		Capacity:            req.Capacity,
		FuelType:            req.FuelType,
		InsuranceNumber:     req.InsuranceNumber,
		InsuranceExpiryDate: req.InsuranceExpiryDate,
		PermitNumber:        req.PermitNumber,
		PermitExpiryDate:    req.PermitExpiryDate,
		Status:              req.Status,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) listAssignments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	activeOnly := c.DefaultQuery("active", "true") != "false"
	assignments, err := h.assignments.List(c.Request.Context(), p, activeOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(assignments))
}

func (h *Handler) createAssignment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireStaff(c, p) {
		return
	}

	var req struct {
		DriverID  string `json:"driver_id" binding:"required"`
		VehicleID string `json:"vehicle_id" binding:"required"`
	}
	if !bind(c, &req) {
		return
	}

	assignment, err := h.assignments.Create(c.Request.Context(), p, service.CreateAssignmentInput{
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(assignment))
}

func (h *Handler) deactivateAssignment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	assignment, err := h.assignments.Deactivate(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(assignment))
}
