package cart

import (
	"sync"
	"testing"

	"burger-palace-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cheeseburger = models.MenuItem{ID: "classic-1", Name: "Classic Cheeseburger", Price: 12.99, Category: models.CategoryClassic}
	fries        = models.MenuItem{ID: "side-1", Name: "Crispy Fries", Price: 4.99, Category: models.CategorySides}
	shake        = models.MenuItem{ID: "drink-2", Name: "Chocolate Milkshake", Price: 5.99, Category: models.CategoryDrinks}
)

func assertTotalConsistent(t *testing.T, c *Cart) {
	t.Helper()
	want := 0.0
	for _, l := range c.Lines() {
		want += l.MenuItem.Price * float64(l.Quantity)
	}
	assert.InDelta(t, want, c.Total(), 1e-9)
}

func TestCart_AddItemMergesLines(t *testing.T) {
	c := New()
	c.AddItem(cheeseburger, 1, "no onions")
	c.AddItem(cheeseburger, 2, "extra pickles")
	c.AddItem(fries, 1, "")

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "no onions", lines[0].SpecialInstructions)
	assert.Equal(t, 4, c.ItemCount())
	assertTotalConsistent(t, c)
}

func TestCart_AddItemAdoptsInstructionsWhenNoneSet(t *testing.T) {
	c := New()
	c.AddItem(fries, 1, "")
	c.AddItem(fries, 1, "extra salt")

	assert.Equal(t, "extra salt", c.Lines()[0].SpecialInstructions)
}

func TestCart_ScenarioTotal(t *testing.T) {
	c := New()
	c.AddItem(cheeseburger, 2, "")
	c.AddItem(fries, 1, "")

	assert.Equal(t, 30.97, c.Total())
	assert.Equal(t, 3, c.ItemCount())
}

func TestCart_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		itemID    string
		quantity  int
		wantFound bool
		wantLines int
		wantCount int
	}{
		{name: "sets quantity", itemID: "classic-1", quantity: 5, wantFound: true, wantLines: 2, wantCount: 6},
		{name: "zero removes", itemID: "classic-1", quantity: 0, wantFound: true, wantLines: 1, wantCount: 1},
		{name: "negative removes", itemID: "side-1", quantity: -3, wantFound: true, wantLines: 1, wantCount: 2},
		{name: "unknown id is a no-op", itemID: "missing", quantity: 4, wantFound: false, wantLines: 2, wantCount: 3},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			c := New()
			c.AddItem(cheeseburger, 2, "")
			c.AddItem(fries, 1, "")

			found := c.UpdateQuantity(testCase.itemID, testCase.quantity)

			assert.Equal(t, testCase.wantFound, found)
			assert.Len(t, c.Lines(), testCase.wantLines)
			assert.Equal(t, testCase.wantCount, c.ItemCount())
			assertTotalConsistent(t, c)
		})
	}
}

func TestCart_UpdateQuantityZeroEqualsRemove(t *testing.T) {
	a, b := New(), New()
	for _, c := range []*Cart{a, b} {
		c.AddItem(cheeseburger, 2, "")
		c.AddItem(fries, 1, "")
		c.AddItem(shake, 3, "")
	}

	a.UpdateQuantity("side-1", 0)
	b.RemoveItem("side-1")

	assert.Equal(t, b.Snapshot(), a.Snapshot())
}

func TestCart_ClearAndRemove(t *testing.T) {
	c := New()
	c.AddItem(cheeseburger, 1, "")
	assert.False(t, c.RemoveItem("missing"))
	assert.True(t, c.RemoveItem("classic-1"))
	assert.Zero(t, c.Total())

	c.AddItem(shake, 2, "")
	c.Clear()
	assert.Empty(t, c.Lines())
	assert.Zero(t, c.Total())
	assert.Zero(t, c.ItemCount())
}

func TestCart_TotalTracksEveryMutation(t *testing.T) {
	c := New()
	steps := []func(){
		func() { c.AddItem(cheeseburger, 1, "") },
		func() { c.AddItem(shake, 2, "") },
		func() { c.UpdateQuantity("classic-1", 4) },
		func() { c.AddItem(fries, 3, "") },
		func() { c.RemoveItem("drink-2") },
		func() { c.UpdateQuantity("side-1", 0) },
		func() { c.AddItem(cheeseburger, 1, "") },
	}
	for _, step := range steps {
		step()
		assertTotalConsistent(t, c)
	}
	assert.Equal(t, 5, c.ItemCount())
}

func TestCart_LinesIsASnapshot(t *testing.T) {
	c := New()
	c.AddItem(cheeseburger, 1, "")
	lines := c.Lines()

	c.UpdateQuantity("classic-1", 9)
	c.AddItem(fries, 1, "")

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestCart_ConcurrentAdds(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddItem(fries, 1, "")
		}()
	}
	wg.Wait()

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 50, c.ItemCount())
}

func TestFromLinesMergesDuplicates(t *testing.T) {
	c := FromLines([]models.CartLine{
		{MenuItem: fries, Quantity: 1},
		{MenuItem: fries, Quantity: 2},
		{MenuItem: shake, Quantity: 0},
	})

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 3, c.ItemCount())
}
