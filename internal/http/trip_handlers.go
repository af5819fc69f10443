package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fleet-service/internal/service"
)

// calculatePayout is public and answers {payout, formula} without the data envelope.
func (h *Handler) calculatePayout(c *gin.Context) {
	var req struct {
		Revenue *decimal.Decimal `json:"revenue" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid revenue amount"))
		return
	}

	payout, formula, err := service.PreviewPayout(*req.Revenue)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payout":  payout.InexactFloat64(),
		"formula": formula,
	})
}

func (h *Handler) listTrips(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	trips, err := h.trips.List(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(trips))
}

func (h *Handler) getTrip(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	trip, err := h.trips.GetByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) createTrip(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req struct {
		PickupLocation string           `json:"pickup_location" binding:"required"`
		DropLocation   string           `json:"drop_location" binding:"required"`
		Distance       *decimal.Decimal `json:"distance"`
		Revenue        *decimal.Decimal `json:"revenue" binding:"required"`
	}
	if !bind(c, &req) {
		return
	}

	trip, err := h.trips.Create(c.Request.Context(), p, service.CreateTripInput{
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
		Distance:       req.Distance,
		Revenue:        *req.Revenue,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(trip))
}

func (h *Handler) listPayouts(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	payouts, err := h.payouts.List(c.Request.Context(), p, c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(payouts))
}

func (h *Handler) approvePayout(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireStaff(c, p) {
		return
	}

	var req struct {
		ApprovedAmount *decimal.Decimal `json:"approved_amount"`
		Notes          *string          `json:"notes"`
	}
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	payout, err := h.payouts.Approve(c.Request.Context(), p, c.Param("id"), service.ApprovePayoutInput{
		ApprovedAmount: req.ApprovedAmount,
		Notes:          req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(payout))
}

func (h *Handler) rejectPayout(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !requireStaff(c, p) {
		return
	}

	var req struct {
		Notes *string `json:"notes"`
	}
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	payout, err := h.payouts.Reject(c.Request.Context(), p, c.Param("id"), req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(payout))
}

func (h *Handler) markPayoutPaid(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	payout, err := h.payouts.MarkPaid(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(payout))
}

func (h *Handler) dashboardStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	stats, err := h.dashboard.Stats(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(stats))
}
