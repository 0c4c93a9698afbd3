package handlers

import (
	"net/http"
	"strings"

	"burger-palace-api/models"
	"burger-palace-api/reservation"
	"burger-palace-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListMenu returns the menu, optionally narrowed by category or popularity
func (h *Handler) ListMenu(c *gin.Context) {
	items := h.Catalog.All()

	if category := c.Query("category"); category != "" {
		cat := models.MenuCategory(strings.ToLower(category))
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "categories": models.Categories})
			return
		}
		items = h.Catalog.ByCategory(cat)
	}
	if c.Query("popular") == "true" {
		popular := make([]models.MenuItem, 0, len(items))
		for _, item := range items {
			if item.IsPopular {
				popular = append(popular, item)
			}
		}
		items = popular
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"menu":  items,
	})
}

func (h *Handler) GetMenuItem(c *gin.Context) {
	item, ok := h.Catalog.Find(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// GetAvailability lists the slots of a date that still have a free table
func (h *Handler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter required (YYYY-MM-DD)"})
		return
	}
	available := h.Reservations.GetAvailableTimes(date)
	c.JSON(http.StatusOK, gin.H{
		"date":            date,
		"available_times": available,
		"all_times":       reservation.TimeSlots,
		"total_tables":    h.Reservations.TotalTables(),
		"max_party_size":  models.MaxPartySize,
	})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"initial_state":   models.StatusConfirmed,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Burger Palace Order Lifecycle State Machine",
	})
}
