// Package orders turns cart snapshots into orders and moves them through the
// order lifecycle.
package orders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"burger-palace-api/events"
	"burger-palace-api/models"
	"burger-palace-api/statemachine"

	"github.com/google/uuid"
)

// Store persists the append-only order log
type Store interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, history *models.OrderStatusHistory) error
	LoadOrders(ctx context.Context) ([]models.Order, error)
}

type Manager struct {
	mu        sync.Mutex
	log       []*models.Order
	byID      map[string]*models.Order
	store     Store
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

func NewManager(store Store, publisher events.Publisher, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		byID:      make(map[string]*models.Order),
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore replaces in-memory state with the persisted order log
func (m *Manager) Restore(ctx context.Context) error {
	stored, err := m.store.LoadOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.log = make([]*models.Order, 0, len(stored))
	m.byID = make(map[string]*models.Order, len(stored))
	for i := range stored {
		o := stored[i]
		m.log = append(m.log, &o)
		m.byID[o.ID] = &o
	}
	return nil
}

// PlaceOrder freezes lines into a new confirmed order.
// The total is computed from the copied lines, so later cart changes never reach the order.
func (m *Manager) PlaceOrder(ctx context.Context, userID string, lines []models.CartLine, orderType models.OrderType, deliveryAddress string) (models.Order, error) {
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if err := validatePlacement(userID, lines, orderType, deliveryAddress); err != nil {
		return models.Order{}, err
	}
	if orderType == models.OrderTypePickup {
		deliveryAddress = ""
	}

	items := make([]models.OrderItem, len(lines))
	frozen := make([]models.CartLine, len(lines))
	for i, l := range lines {
		frozen[i] = l
		items[i] = models.OrderItem{
			Position:            i,
			MenuItemID:          l.MenuItem.ID,
			Name:                l.MenuItem.Name,
			Price:               l.MenuItem.Price,
			Category:            l.MenuItem.Category,
			Quantity:            l.Quantity,
			SpecialInstructions: l.SpecialInstructions,
		}
	}

	now := m.now()
	order := &models.Order{
		ID:              m.newID(),
		UserID:          userID,
		Items:           items,
		Total:           models.CartTotal(frozen),
		Status:          models.StatusConfirmed,
		OrderType:       orderType,
		DeliveryAddress: deliveryAddress,
		EstimatedTime:   orderType.EstimatedMinutes(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.StatusHistory = []models.OrderStatusHistory{{
		OrderID:   order.ID,
		ToStatus:  models.StatusConfirmed,
		ChangedBy: userID,
		Note:      "Order placed by customer",
		CreatedAt: now,
	}}

	m.mu.Lock()
	if err := m.store.CreateOrder(ctx, order); err != nil {
		m.mu.Unlock()
		return models.Order{}, fmt.Errorf("failed to save order: %w", err)
	}
	m.log = append(m.log, order)
	m.byID[order.ID] = order
	placed := order.Clone()
	m.mu.Unlock()

	m.logger.Info("order placed",
		slog.String("order_id", placed.ID),
		slog.String("order_type", string(orderType)),
		slog.Float64("total", placed.Total))
	m.publish(ctx, events.OrderPlaced, placed)
	return placed, nil
}

// UpdateOrderStatus moves an order along any legal edge of the lifecycle
func (m *Manager) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error) {
	return m.Transition(ctx, orderID, status, statemachine.ActorSystem, "", "")
}

// Transition moves an order to status on behalf of actor and records the change.
// It fails with models.ErrNotFound for unknown ids and models.ErrValidation for illegal moves.
func (m *Manager) Transition(ctx context.Context, orderID string, status models.OrderStatus, actor statemachine.Actor, changedBy, note string) (models.Order, error) {
	m.mu.Lock()
	order, ok := m.byID[orderID]
	if !ok {
		m.mu.Unlock()
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}
	if err := statemachine.CanTransition(order.Status, status, actor); err != nil {
		current := order.Clone()
		m.mu.Unlock()
		return current, err
	}

	now := m.now()
	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: order.Status,
		ToStatus:   status,
		ChangedBy:  changedBy,
		Note:       note,
		CreatedAt:  now,
	}
	if err := m.store.UpdateOrderStatus(ctx, order.ID, status, &history); err != nil {
		current := order.Clone()
		m.mu.Unlock()
		return current, fmt.Errorf("failed to update order: %w", err)
	}
	order.Status = status
	order.UpdatedAt = now
	order.StatusHistory = append(order.StatusHistory, history)
	updated := order.Clone()
	m.mu.Unlock()

	m.logger.Info("order status changed",
		slog.String("order_id", orderID),
		slog.String("from", string(history.FromStatus)),
		slog.String("to", string(status)),
		slog.String("actor", string(actor)))
	m.publish(ctx, events.OrderStatusChanged, updated)
	return updated, nil
}

// GetUserOrders returns the user's orders in placement order
func (m *Manager) GetUserOrders(userID string) []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Order
	for _, o := range m.log {
		if o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (m *Manager) GetOrderByID(orderID string) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.byID[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}
	return o.Clone(), nil
}

// All returns every order, optionally filtered by status
func (m *Manager) All(status models.OrderStatus) []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Order, 0, len(m.log))
	for _, o := range m.log {
		if status == "" || o.Status == status {
			out = append(out, o.Clone())
		}
	}
	return out
}

func validatePlacement(userID string, lines []models.CartLine, orderType models.OrderType, deliveryAddress string) error {
	if userID == "" {
		return models.NewValidationError("user_id", "is required")
	}
	if !orderType.Valid() {
		return models.NewValidationError("order_type", "must be delivery or pickup")
	}
	if orderType == models.OrderTypeDelivery && deliveryAddress == "" {
		return models.NewValidationError("delivery_address", "is required for delivery orders")
	}
	if len(lines) == 0 {
		return models.NewValidationError("items", "cart is empty")
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return models.NewValidationError("items", "quantity of "+l.MenuItem.ID+" must be at least 1")
		}
	}
	return nil
}

func (m *Manager) publish(ctx context.Context, typ events.Type, o models.Order) {
	err := m.publisher.Publish(ctx, events.Event{
		Type:      typ,
		EntityID:  o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     o.Total,
		Timestamp: m.now(),
	})
	if err != nil {
		m.logger.Warn("failed to publish order event",
			slog.String("type", string(typ)),
			slog.String("order_id", o.ID),
			slog.Any("error", err))
	}
}
