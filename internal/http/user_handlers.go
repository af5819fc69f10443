package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/service"
)

func (h *Handler) currentUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, err := h.users.Current(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(user))
}

func (h *Handler) listUsers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	users, err := h.users.List(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(users))
}

func (h *Handler) updateUserRole(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireAdmin(c, p) {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if !bind(c, &req) {
		return
	}

	user, err := h.users.UpdateRole(c.Request.Context(), p, c.Param("id"), req.Role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(user))
}

func (h *Handler) listDrivers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	drivers, err := h.drivers.List(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(drivers))
}

func (h *Handler) getDriver(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	driver, err := h.drivers.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) createDriver(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireAdmin(c, p) {
		return
	}

	var req struct {
		UserID            string  `json:"user_id" binding:"required"`
		EmployeeID        string  `json:"employee_id" binding:"required"`
		PhoneNumber       *string `json:"phone_number"`
		Address           *string `json:"address"`
		LicenseNumber     *string `json:"license_number"`
		LicenseExpiryDate *string `json:"license_expiry_date"`
		DateOfBirth       *string `json:"date_of_birth"`
		EmergencyContact  *string `json:"emergency_contact"`
	}
	if !bind(c, &req) {
		return
	}

	driver, err := h.drivers.Create(c.Request.Context(), p, service.CreateDriverInput{
		UserID:            req.UserID,
		EmployeeID:        req.EmployeeID,
		PhoneNumber:       req.PhoneNumber,
		Address:           req.Address,
		LicenseNumber:     req.LicenseNumber,
		LicenseExpiryDate: req.LicenseExpiryDate,
		DateOfBirth:       req.DateOfBirth,
		EmergencyContact:  req.EmergencyContact,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(driver))
}

func (h *Handler) updateDriver(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireAdmin(c, p) {
		return
	}

	var req struct {
		EmployeeID        *string `json:"employee_id"`
		PhoneNumber       *string `json:"phone_number"`
		Address           *string `json:"address"`
		LicenseNumber     *string `json:"license_number"`
		LicenseExpiryDate *string `json:"license_expiry_date"`
		DateOfBirth       *string `json:"date_of_birth"`
		EmergencyContact  *string `json:"emergency_contact"`
		IsActive          *bool   `json:"is_active"`
	}
	if !bind(c, &req) {
		return
	}

	driver, err := h.drivers.Update(c.Request.Context(), p, c.Param("id"), service.UpdateDriverInput{
		EmployeeID:        req.EmployeeID,
		PhoneNumber:       req.PhoneNumber,
		Address:           req.Address,
		LicenseNumber:     req.LicenseNumber,
		LicenseExpiryDate: req.LicenseExpiryDate,
		DateOfBirth:       req.DateOfBirth,
		EmergencyContact:  req.EmergencyContact,
		IsActive:          req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(driver))
}
