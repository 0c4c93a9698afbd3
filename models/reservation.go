package models

import "time"

// ReservationStatus represents the states of a table reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// MaxPartySize is the largest party the booking form offers
const MaxPartySize = 8

type TableReservation struct {
	ID              string            `json:"id" gorm:"primaryKey;size:36"`
	UserID          string            `json:"user_id" gorm:"index;not null"`
	Date            string            `json:"date" gorm:"index:idx_reservation_slot;not null"`
	Time            string            `json:"time" gorm:"index:idx_reservation_slot;not null"`
	PartySize       int               `json:"party_size" gorm:"not null"`
	TableNumber     int               `json:"table_number" gorm:"not null"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	Status          ReservationStatus `json:"status" gorm:"not null;default:'confirmed'"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Active reports whether the reservation still holds its table
func (r TableReservation) Active() bool {
	return r.Status != ReservationCancelled
}
