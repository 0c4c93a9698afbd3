package models

// CartLine is one menu item in a cart with its quantity
type CartLine struct {
	MenuItem            MenuItem `json:"menu_item"`
	Quantity            int      `json:"quantity"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

// LineTotal returns price × quantity at full precision
func (l CartLine) LineTotal() float64 {
	return Money(l.MenuItem.Price).Mul(Qty(l.Quantity)).InexactFloat64()
}

// CartTotal sums price × quantity over lines
func CartTotal(lines []CartLine) float64 {
	sum := Money(0)
	for _, l := range lines {
		sum = sum.Add(Money(l.MenuItem.Price).Mul(Qty(l.Quantity)))
	}
	return sum.InexactFloat64()
}

// CartLineRecord is the persisted row of a session cart
type CartLineRecord struct {
	ID                  uint   `gorm:"primaryKey"`
	SessionID           string `gorm:"index;not null"`
	Position            int    `gorm:"not null"`
	MenuItemID          string `gorm:"not null"`
	Name                string
	Price               float64
	Category            MenuCategory
	Quantity            int `gorm:"not null"`
	SpecialInstructions string
}

func (CartLineRecord) TableName() string { return "cart_lines" }
