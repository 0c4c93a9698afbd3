package handlers

import (
	"net/http"

	"burger-palace-api/cart"
	"burger-palace-api/middleware"
	"burger-palace-api/models"
	"burger-palace-api/orders"

	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	MenuItemID          string `json:"menu_item_id" binding:"required"`
	Quantity            int    `json:"quantity" binding:"omitempty,min=1,max=99"`
	SpecialInstructions string `json:"special_instructions" binding:"max=500"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0,max=99"`
}

func cartResponse(snap cart.Snapshot, orderType models.OrderType) gin.H {
	return gin.H{
		"cart":       snap,
		"order_type": orderType,
		"breakdown":  orders.Breakdown(snap.Total, orderType).Display(),
	}
}

func quoteType(c *gin.Context) (models.OrderType, bool) {
	orderType := models.OrderType(c.DefaultQuery("order_type", string(models.OrderTypeDelivery)))
	if !orderType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_type must be delivery or pickup"})
		return "", false
	}
	return orderType, true
}

// GetCart returns the cart with a cost quote for ?order_type=delivery|pickup
func (h *Handler) GetCart(c *gin.Context) {
	orderType, ok := quoteType(c)
	if !ok {
		return
	}
	snap, err := h.Carts.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(snap, orderType))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, ok := h.Catalog.Find(req.MenuItemID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	snap, err := h.Carts.Mutate(c.Request.Context(), middleware.GetUserID(c), func(ct *cart.Cart) {
		ct.AddItem(item, req.Quantity, req.SpecialInstructions)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(snap, models.OrderTypeDelivery))
}

// UpdateCartItem sets a line's quantity; zero removes the line
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var found bool
	snap, err := h.Carts.Mutate(c.Request.Context(), middleware.GetUserID(c), func(ct *cart.Cart) {
		found = ct.UpdateQuantity(c.Param("itemId"), *req.Quantity)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in the cart", "cart": snap})
		return
	}
	c.JSON(http.StatusOK, cartResponse(snap, models.OrderTypeDelivery))
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	var found bool
	snap, err := h.Carts.Mutate(c.Request.Context(), middleware.GetUserID(c), func(ct *cart.Cart) {
		found = ct.RemoveItem(c.Param("itemId"))
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in the cart", "cart": snap})
		return
	}
	c.JSON(http.StatusOK, cartResponse(snap, models.OrderTypeDelivery))
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.Carts.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
