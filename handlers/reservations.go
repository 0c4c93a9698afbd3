package handlers

import (
	"fmt"
	"net/http"

	"burger-palace-api/middleware"
	"burger-palace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

// party size is capped here, not in the allocator, to match the booking form
type MakeReservationRequest struct {
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string `json:"time" binding:"required"`
	PartySize       int    `json:"party_size" binding:"required,min=1,max=8"`
	SpecialRequests string `json:"special_requests" binding:"max=500"`
}

// MakeReservation books the lowest free table for the requested slot
func (h *Handler) MakeReservation(c *gin.Context) {
	var req MakeReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := h.Reservations.MakeReservation(c.Request.Context(), middleware.GetUserID(c),
		req.Date, req.Time, req.PartySize, req.SpecialRequests)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Table reserved",
		"reservation": r,
		"qr_code":     h.reservationQRURL(r.ID),
	})
}

func (h *Handler) GetMyReservations(c *gin.Context) {
	list := h.Reservations.GetUserReservations(middleware.GetUserID(c))
	c.JSON(http.StatusOK, gin.H{"count": len(list), "reservations": list})
}

// CancelReservation frees the table; owners and staff only
func (h *Handler) CancelReservation(c *gin.Context) {
	r, ok := h.ownReservation(c)
	if !ok {
		return
	}
	cancelled, err := h.Reservations.CancelReservation(c.Request.Context(), r.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled", "reservation": cancelled})
}

// GetReservationQRCode renders a check-in code the front desk scans on arrival
func (h *Handler) GetReservationQRCode(c *gin.Context) {
	r, ok := h.ownReservation(c)
	if !ok {
		return
	}
	if r.Status != models.ReservationConfirmed {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Only confirmed reservations have a check-in code"})
		return
	}

	png, err := qrcode.Encode(checkInPayload(r), qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) reservationQRURL(id string) string {
	return fmt.Sprintf("%s/api/reservations/%s/qrcode", h.PublicBaseURL, id)
}

// checkInPayload is what the front desk scanner reads; the desk client then
// calls PUT /api/staff/reservations/:id/complete with its own staff token.
func checkInPayload(r models.TableReservation) string {
	return r.ID
}

func (h *Handler) ownReservation(c *gin.Context) (models.TableReservation, bool) {
	r, err := h.Reservations.GetReservation(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return models.TableReservation{}, false
	}
	if r.UserID != middleware.GetUserID(c) && !middleware.IsStaff(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This reservation does not belong to you"})
		return models.TableReservation{}, false
	}
	return r, true
}
