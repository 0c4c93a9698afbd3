package models

import "time"

// OrderStatus represents all possible states of a diner's order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderType is how the order reaches the diner
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

// Estimated fulfillment times in minutes
const (
	DeliveryEstimate = 45
	PickupEstimate   = 20
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDelivery || t == OrderTypePickup
}

// EstimatedMinutes returns the fixed fulfillment estimate for the order type
func (t OrderType) EstimatedMinutes() int {
	if t == OrderTypeDelivery {
		return DeliveryEstimate
	}
	return PickupEstimate
}

type Order struct {
	ID              string               `json:"id" gorm:"primaryKey;size:36"`
	UserID          string               `json:"user_id" gorm:"index;not null"`
	Items           []OrderItem          `json:"items" gorm:"foreignKey:OrderID"`
	Total           float64              `json:"total"`
	Status          OrderStatus          `json:"status" gorm:"not null;default:'confirmed'"`
	OrderType       OrderType            `json:"order_type" gorm:"not null"`
	DeliveryAddress string               `json:"delivery_address,omitempty"`
	EstimatedTime   int                  `json:"estimated_time_minutes"`
	StatusHistory   []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// OrderItem is the frozen copy of a cart line taken when the order was placed
type OrderItem struct {
	ID                  uint         `json:"-" gorm:"primaryKey"`
	OrderID             string       `json:"-" gorm:"index;size:36;not null"`
	Position            int          `json:"-"`
	MenuItemID          string       `json:"menu_item_id" gorm:"not null"`
	Name                string       `json:"name"`                  // snapshot name
	Price               float64      `json:"price" gorm:"not null"` // snapshot price at time of order
	Category            MenuCategory `json:"category"`
	Quantity            int          `json:"quantity" gorm:"not null"`
	SpecialInstructions string       `json:"special_instructions,omitempty"`
}

// OrderStatusHistory tracks every status change of an order
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    string      `json:"order_id" gorm:"index;size:36;not null"`
	FromStatus OrderStatus `json:"from_status,omitempty"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  string      `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Clone returns a deep copy so callers never share slices with the order log
func (o Order) Clone() Order {
	c := o
	c.Items = append([]OrderItem(nil), o.Items...)
	c.StatusHistory = append([]OrderStatusHistory(nil), o.StatusHistory...)
	return c
}
