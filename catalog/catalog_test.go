package catalog

import (
	"testing"

	"burger-palace-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Len(t, c.All(), 15)
	assert.Len(t, c.ByCategory(models.CategorySides), 4)

	var popular []string
	for _, item := range c.Popular() {
		popular = append(popular, item.ID)
	}
	assert.Equal(t, []string{"classic-1", "classic-2", "specialty-1", "veg-1", "drink-2"}, popular)

	item, ok := c.Find("classic-1")
	require.True(t, ok)
	assert.Equal(t, 12.99, item.Price)

	_, ok = c.Find("missing")
	assert.False(t, ok)
}

func TestCatalogHandsOutCopies(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Price = 0

	item, _ := c.Find(all[0].ID)
	assert.Equal(t, 12.99, item.Price)
}

func TestCatalogCopiesIngredients(t *testing.T) {
	c := Default()
	all := c.All()
	require.NotEmpty(t, all[0].Ingredients)
	original := all[0].Ingredients[0]
	all[0].Ingredients[0] = "MUTATED"

	item, _ := c.Find(all[0].ID)
	assert.Equal(t, original, item.Ingredients[0])

	item.Ingredients[0] = "MUTATED"
	again, _ := c.Find(all[0].ID)
	assert.Equal(t, original, again.Ingredients[0])

	popular := c.Popular()
	popular[0].Ingredients[0] = "MUTATED"
	assert.Equal(t, original, c.All()[0].Ingredients[0])
}
