// Package catalog holds the fixed burger menu. Entries are never mutated after
// construction; lookups hand out copies.
package catalog

import "burger-palace-api/models"

type Catalog struct {
	items []models.MenuItem
	byID  map[string]int
}

// New builds a catalog from the given items, keeping their order
func New(items []models.MenuItem) *Catalog {
	c := &Catalog{
		items: make([]models.MenuItem, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for i, item := range items {
		c.items[i] = item
		c.byID[item.ID] = i
	}
	return c
}

// Default returns the restaurant menu
func Default() *Catalog {
	return New(menuItems)
}

func (c *Catalog) All() []models.MenuItem {
	return cloneAll(c.items)
}

func (c *Catalog) Find(id string) (models.MenuItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.MenuItem{}, false
	}
	return clone(c.items[i]), true
}

func (c *Catalog) ByCategory(category models.MenuCategory) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, clone(item))
		}
	}
	return out
}

func (c *Catalog) Popular() []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if item.IsPopular {
			out = append(out, clone(item))
		}
	}
	return out
}

func clone(item models.MenuItem) models.MenuItem {
	item.Ingredients = append([]string(nil), item.Ingredients...)
	return item
}

func cloneAll(items []models.MenuItem) []models.MenuItem {
	out := make([]models.MenuItem, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}
