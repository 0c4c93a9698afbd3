package handlers

import (
	"net/http"

	"burger-palace-api/middleware"
	"burger-palace-api/models"
	"burger-palace-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListOrders is the kitchen board: every order, optionally filtered by ?status=
func (h *Handler) ListOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	list := h.Orders.All(status)

	// dashboard summary
	summary := map[string]int{}
	revenue := decimal.Zero
	for _, o := range list {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			revenue = revenue.Add(models.Money(o.Total))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": revenue.StringFixed(2),
		"count":         len(list),
		"orders":        list,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus handles the kitchen's state transitions
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Orders.GetOrderByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	updated, err := h.Orders.Transition(c.Request.Context(), order.ID, req.Status,
		statemachine.ActorStaff, middleware.GetUserID(c), req.Note)
	if err != nil {
		if _, isValidation := asValidation(err); isValidation {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             "Invalid state transition",
				"current_status":    order.Status,
				"requested":         req.Status,
				"reason":            err.Error(),
				"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
			})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        updated.ID,
		"previous_status": string(order.Status),
		"current_status":  string(updated.Status),
	})
}

// ListSlotReservations shows which tables are held for ?date=&time=
func (h *Handler) ListSlotReservations(c *gin.Context) {
	date, slot := c.Query("date"), c.Query("time")
	if date == "" || slot == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and time query parameters required"})
		return
	}
	held := h.Reservations.HeldTables(date, slot)
	c.JSON(http.StatusOK, gin.H{
		"date":         date,
		"time":         slot,
		"held_tables":  held,
		"free_tables":  h.Reservations.TotalTables() - len(held),
		"total_tables": h.Reservations.TotalTables(),
	})
}

// CompleteReservation checks a party in; the table stays held for the slot
func (h *Handler) CompleteReservation(c *gin.Context) {
	r, err := h.Reservations.CompleteReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation completed", "reservation": r})
}
