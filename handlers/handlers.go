package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"burger-palace-api/cart"
	"burger-palace-api/catalog"
	"burger-palace-api/models"
	"burger-palace-api/orders"
	"burger-palace-api/reservation"
	"burger-palace-api/store"

	"github.com/gin-gonic/gin"
)

// Handler carries the services every route needs
type Handler struct {
	Catalog       *catalog.Catalog
	Carts         *cart.Registry
	Orders        *orders.Manager
	Reservations  *reservation.Allocator
	Users         store.UserRepository
	JWTSecret     []byte
	PublicBaseURL string
	Logger        *slog.Logger
}

// writeError maps domain errors onto HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	default:
		h.Logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func asValidation(err error) (*models.ValidationError, bool) {
	var vErr *models.ValidationError
	ok := errors.As(err, &vErr)
	return vErr, ok
}
