// Package cart aggregates menu items into a per-session cart whose total is
// always derived from its lines.
package cart

import (
	"sync"

	"burger-palace-api/models"
)

// Cart is safe for concurrent use; every method is an atomic read-modify-write
type Cart struct {
	mu    sync.Mutex
	lines []models.CartLine
}

// Snapshot is an immutable view of a cart at one instant
type Snapshot struct {
	Lines     []models.CartLine `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

func New() *Cart {
	return &Cart{}
}

// FromLines rebuilds a cart, merging duplicate item ids and dropping empty lines
func FromLines(lines []models.CartLine) *Cart {
	c := New()
	for _, l := range lines {
		if l.Quantity > 0 {
			c.AddItem(l.MenuItem, l.Quantity, l.SpecialInstructions)
		}
	}
	return c
}

// AddItem merges into the existing line for the item or appends a new one.
// A quantity below 1 counts as 1. Existing instructions win unless the line has none.
func (c *Cart) AddItem(item models.MenuItem, quantity int, specialInstructions string) {
	if quantity < 1 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(item.ID); i >= 0 {
		c.lines[i].Quantity += quantity
		if c.lines[i].SpecialInstructions == "" {
			c.lines[i].SpecialInstructions = specialInstructions
		}
		return
	}
	c.lines = append(c.lines, models.CartLine{
		MenuItem:            item,
		Quantity:            quantity,
		SpecialInstructions: specialInstructions,
	})
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
// It reports whether the item was in the cart. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(itemID string, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(itemID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.removeAt(i)
		return true
	}
	c.lines[i].Quantity = quantity
	return true
}

// RemoveItem deletes the line for itemID and reports whether it existed
func (c *Cart) RemoveItem(itemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(itemID)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// ItemCount is the sum of quantities, not the number of lines
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return itemCount(c.lines)
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.CartTotal(c.lines)
}

// Lines returns a copy of the cart lines; later cart mutation does not affect it
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartLine(nil), c.lines...)
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := append([]models.CartLine{}, c.lines...)
	return Snapshot{
		Lines:     lines,
		Total:     models.CartTotal(lines),
		ItemCount: itemCount(lines),
	}
}

func (c *Cart) indexOf(itemID string) int {
	for i, l := range c.lines {
		if l.MenuItem.ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

func itemCount(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
