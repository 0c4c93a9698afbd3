package handlers

import (
	"net/http"
	"time"

	"burger-palace-api/middleware"
	"burger-palace-api/models"
	"burger-palace-api/orders"
	"burger-palace-api/statemachine"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	OrderType       models.OrderType `json:"order_type" binding:"required,oneof=delivery pickup"`
	DeliveryAddress string           `json:"delivery_address" binding:"max=500"`
}

// PlaceOrder turns the caller's cart into an order and empties the cart
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var order models.Order
	err := h.Carts.Checkout(ctx, userID, func(lines []models.CartLine) error {
		var err error
		order, err = h.Orders.PlaceOrder(ctx, userID, lines, req.OrderType, req.DeliveryAddress)
		return err
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Order placed successfully",
		"order":          order,
		"breakdown":      orders.Breakdown(order.Total, order.OrderType).Display(),
		"estimated_time": order.EstimatedTime,
	})
}

// GetMyOrders returns all orders for the logged-in customer, newest first
func (h *Handler) GetMyOrders(c *gin.Context) {
	placed := h.Orders.GetUserOrders(middleware.GetUserID(c))
	newestFirst := make([]models.Order, len(placed))
	for i, o := range placed {
		newestFirst[len(placed)-1-i] = o
	}
	c.JSON(http.StatusOK, gin.H{"count": len(newestFirst), "orders": newestFirst})
}

// GetOrderDetail returns a single order's full detail with history and cost breakdown
func (h *Handler) GetOrderDetail(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}

	elapsed := time.Since(order.CreatedAt).Minutes()
	c.JSON(http.StatusOK, gin.H{
		"order":             order,
		"breakdown":         orders.Breakdown(order.Total, order.OrderType).Display(),
		"minutes_elapsed":   int(elapsed),
		"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
	})
}

// CancelOrder cancels an order while it is still pending or confirmed
func (h *Handler) CancelOrder(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}

	updated, err := h.Orders.Transition(c.Request.Context(), order.ID, models.StatusCancelled,
		statemachine.ActorCustomer, middleware.GetUserID(c), "Order cancelled by customer")
	if err != nil {
		if _, isValidation := asValidation(err); isValidation {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":         "Cannot cancel order",
				"reason":        err.Error(),
				"current_state": order.Status,
			})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": updated.ID})
}

// ownOrder loads the order named in the path; staff may see any order
func (h *Handler) ownOrder(c *gin.Context) (models.Order, bool) {
	order, err := h.Orders.GetOrderByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return models.Order{}, false
	}
	if order.UserID != middleware.GetUserID(c) && !middleware.IsStaff(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return models.Order{}, false
	}
	return order, true
}
