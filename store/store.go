// Package store snapshots carts, orders and reservations to a key-value or SQL
// backend so a restarted process can pick up where it left off. It is not a
// durability layer: the in-memory components stay authoritative while running.
package store

import (
	"context"
	"errors"
	"time"

	"burger-palace-api/models"
)

var ErrEmailTaken = errors.New("email already registered")

// Snapshotter is the persistence contract shared by every backend
type Snapshotter interface {
	SaveCart(ctx context.Context, sessionID string, lines []models.CartLine) error
	LoadCart(ctx context.Context, sessionID string) ([]models.CartLine, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, history *models.OrderStatusHistory) error
	LoadOrders(ctx context.Context) ([]models.Order, error)

	CreateReservation(ctx context.Context, r *models.TableReservation) error
	UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus, updatedAt time.Time) error
	LoadReservations(ctx context.Context) ([]models.TableReservation, error)

	Close() error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Memory keeps nothing; state lives only as long as the process
type Memory struct{}

func (Memory) SaveCart(context.Context, string, []models.CartLine) error { return nil }
func (Memory) LoadCart(context.Context, string) ([]models.CartLine, error) {
	return nil, nil
}
func (Memory) CreateOrder(context.Context, *models.Order) error { return nil }
func (Memory) UpdateOrderStatus(context.Context, string, models.OrderStatus, *models.OrderStatusHistory) error {
	return nil
}
func (Memory) LoadOrders(context.Context) ([]models.Order, error)                { return nil, nil }
func (Memory) CreateReservation(context.Context, *models.TableReservation) error { return nil }
func (Memory) UpdateReservationStatus(context.Context, string, models.ReservationStatus, time.Time) error {
	return nil
}
func (Memory) LoadReservations(context.Context) ([]models.TableReservation, error) { return nil, nil }
func (Memory) Close() error                                                        { return nil }
