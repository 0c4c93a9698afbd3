package models

// MenuCategory groups menu items on the menu page
type MenuCategory string

const (
	CategoryClassic    MenuCategory = "classic"
	CategorySpecialty  MenuCategory = "specialty"
	CategoryVegetarian MenuCategory = "vegetarian"
	CategorySides      MenuCategory = "sides"
	CategoryDrinks     MenuCategory = "drinks"
)

// Categories lists menu categories in display order
var Categories = []MenuCategory{
	CategoryClassic,
	CategorySpecialty,
	CategoryVegetarian,
	CategorySides,
	CategoryDrinks,
}

func (c MenuCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MenuItem is a read-only catalog entry
type MenuItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Image       string       `json:"image,omitempty"`
	Category    MenuCategory `json:"category"`
	IsPopular   bool         `json:"is_popular"`
	Ingredients []string     `json:"ingredients,omitempty"`
	Calories    int          `json:"calories"`
}
