// Package events publishes order and reservation lifecycle notifications to a
// message broker. Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"time"
)

type Type string

const (
	OrderPlaced          Type = "order_placed"
	OrderStatusChanged   Type = "order_status_changed"
	ReservationCreated   Type = "reservation_created"
	ReservationCancelled Type = "reservation_cancelled"
	ReservationCompleted Type = "reservation_completed"
)

// Event is the JSON payload written to the broker
type Event struct {
	Type        Type      `json:"type"`
	EntityID    string    `json:"entity_id"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	Total       float64   `json:"total,omitempty"`
	Date        string    `json:"date,omitempty"`
	Time        string    `json:"time,omitempty"`
	TableNumber int       `json:"table_number,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop drops every event
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
