package catalog

import "burger-palace-api/models"

var menuItems = []models.MenuItem{
	// Classic Burgers
	{
		ID:          "classic-1",
		Name:        "Classic Cheeseburger",
		Description: "Our signature beef patty with American cheese, lettuce, tomato, onion, and our special sauce",
		Price:       12.99,
		Category:    models.CategoryClassic,
		IsPopular:   true,
		Ingredients: []string{"Beef Patty", "American Cheese", "Lettuce", "Tomato", "Onion", "Special Sauce", "Sesame Bun"},
		Calories:    650,
	},
	{
		ID:          "classic-2",
		Name:        "Double Stack",
		Description: "Two juicy beef patties with double cheese, pickles, and mustard",
		Price:       16.99,
		Category:    models.CategoryClassic,
		IsPopular:   true,
		Ingredients: []string{"2x Beef Patty", "2x American Cheese", "Pickles", "Mustard", "Ketchup", "Sesame Bun"},
		Calories:    980,
	},
	{
		ID:          "classic-3",
		Name:        "Bacon Deluxe",
		Description: "Crispy bacon, cheddar cheese, lettuce, and our smoky BBQ sauce",
		Price:       14.99,
		Category:    models.CategoryClassic,
		Ingredients: []string{"Beef Patty", "Crispy Bacon", "Cheddar Cheese", "Lettuce", "BBQ Sauce", "Brioche Bun"},
		Calories:    780,
	},
	// Specialty Burgers
	{
		ID:          "specialty-1",
		Name:        "Truffle Mushroom",
		Description: "Premium beef with sautéed mushrooms, Swiss cheese, and truffle aioli",
		Price:       18.99,
		Category:    models.CategorySpecialty,
		IsPopular:   true,
		Ingredients: []string{"Premium Beef Patty", "Sautéed Mushrooms", "Swiss Cheese", "Truffle Aioli", "Arugula", "Brioche Bun"},
		Calories:    720,
	},
	{
		ID:          "specialty-2",
		Name:        "Spicy Jalapeño",
		Description: "Fiery burger with jalapeños, pepper jack cheese, and chipotle mayo",
		Price:       15.99,
		Category:    models.CategorySpecialty,
		Ingredients: []string{"Beef Patty", "Fresh Jalapeños", "Pepper Jack Cheese", "Chipotle Mayo", "Lettuce", "Jalapeño Bun"},
		Calories:    690,
	},
	{
		ID:          "specialty-3",
		Name:        "Blue Cheese & Caramelized Onion",
		Description: "Gourmet burger with crumbled blue cheese and sweet caramelized onions",
		Price:       17.99,
		Category:    models.CategorySpecialty,
		Calories:    750,
	},
	// Vegetarian
	{
		ID:          "veg-1",
		Name:        "Beyond Classic",
		Description: "Plant-based patty with all the classic toppings",
		Price:       14.99,
		Category:    models.CategoryVegetarian,
		IsPopular:   true,
		Calories:    580,
	},
	{
		ID:          "veg-2",
		Name:        "Portobello Supreme",
		Description: "Grilled portobello mushroom with goat cheese and balsamic glaze",
		Price:       13.99,
		Category:    models.CategoryVegetarian,
		Calories:    420,
	},
	// Sides
	{ID: "side-1", Name: "Crispy Fries", Description: "Golden crispy fries with sea salt", Price: 4.99, Category: models.CategorySides, Calories: 320},
	{ID: "side-2", Name: "Onion Rings", Description: "Beer-battered onion rings with ranch dipping sauce", Price: 5.99, Category: models.CategorySides, Calories: 380},
	{ID: "side-3", Name: "Sweet Potato Fries", Description: "Crispy sweet potato fries with maple dipping sauce", Price: 5.99, Category: models.CategorySides, Calories: 290},
	{ID: "side-4", Name: "Coleslaw", Description: "Creamy homemade coleslaw", Price: 3.99, Category: models.CategorySides, Calories: 180},
	// Drinks
	{ID: "drink-1", Name: "Craft Lemonade", Description: "Fresh-squeezed lemonade with a hint of mint", Price: 3.99, Category: models.CategoryDrinks, Calories: 120},
	{ID: "drink-2", Name: "Chocolate Milkshake", Description: "Rich and creamy chocolate milkshake", Price: 5.99, Category: models.CategoryDrinks, IsPopular: true, Calories: 520},
	{ID: "drink-3", Name: "Soft Drinks", Description: "Choice of Cola, Sprite, or Fanta", Price: 2.99, Category: models.CategoryDrinks, Calories: 150},
}
