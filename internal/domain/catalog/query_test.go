package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func item(id, name, category, subCategory string, price int64) Item {
	return Item{
		ID:          id,
		Name:        name,
		Category:    category,
		SubCategory: subCategory,
		Price:       decimal.NewFromInt(price),
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// --- Tests ---

func TestQuery_EmptyMatchesAll(t *testing.T) {
	items := []Item{
		item("1", "Paneer Tikka", "Starters", "Veg", 180),
		item("2", "Chicken Biryani", "Main Course", "Non-Veg", 250),
	}

	visible := Apply(items, Query{})
	assert.Equal(t, []string{"1", "2"}, ids(visible))
}

func TestQuery_SearchFields(t *testing.T) {
	items := []Item{
		item("1", "Paneer Tikka", "Starters", "Veg", 180),
		item("2", "Chicken Biryani", "Main Course", "Non-Veg", 250),
		item("3", "Masala Chai", "Beverages", "Veg", 30),
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by name", "biryani", []string{"2"}},
		{"by name case insensitive", "PANEER", []string{"1"}},
		{"by category", "beverages", []string{"3"}},
		{"by sub-category", "non-veg", []string{"2"}},
		{"by price text", "25", []string{"2"}},
		{"price substring", "0", []string{"1", "2", "3"}},
		{"no match", "pizza", nil},
		{"whitespace only matches all", "   ", []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := Apply(items, Query{Search: tt.search})
			if tt.want == nil {
				assert.Empty(t, visible)
				return
			}
			assert.Equal(t, tt.want, ids(visible))
		})
	}
}

func TestQuery_FilterModes(t *testing.T) {
	items := []Item{
		item("1", "Paneer Tikka", "Starters", "Veg", 180),
		item("2", "Chicken Biryani", "Main Course", "Non-Veg", 250),
		item("3", "Masala Chai", "Beverages", "Veg", 30),
		item("4", "Samosa", "Starters", "Veg", 25),
	}

	assert.Equal(t, []string{"1", "4"}, ids(Apply(items, Query{Filter: "Starters"})))
	assert.Equal(t, []string{"1", "3", "4"}, ids(Apply(items, Query{Filter: "Veg"})))
	assert.Equal(t, []string{"3", "4"}, ids(Apply(items, Query{Filter: FilterUnder100})))
}

func TestQuery_Under100IsNotACategory(t *testing.T) {
	// A catalog that happens to contain a category literally named
	// "under100" must not collide with the price sentinel.
	items := []Item{
		item("1", "Oddball", "under100", "Veg", 500),
		item("2", "Cheap Snack", "Starters", "Veg", 40),
	}

	visible := Apply(items, Query{Filter: FilterUnder100})
	require.Len(t, visible, 1)
	assert.Equal(t, "2", visible[0].ID)
}

func TestQuery_Conjunction(t *testing.T) {
	items := []Item{
		item("1", "Veg Thali", "Main Course", "Veg", 150),
		item("2", "Veg Manchurian", "Chinese", "Veg", 90),
		item("3", "Chicken Thali", "Main Course", "Non-Veg", 200),
	}

	// Both predicates must hold independently.
	visible := Apply(items, Query{Search: "thali", Filter: "Veg"})
	require.Len(t, visible, 1)
	assert.Equal(t, "1", visible[0].ID)

	visible = Apply(items, Query{Search: "veg", Filter: FilterUnder100})
	require.Len(t, visible, 1)
	assert.Equal(t, "2", visible[0].ID)
}

func TestQuery_OverlappingCategoryAndSubCategory(t *testing.T) {
	// The same value used as one item's category and another's sub-category
	// matches both through the filter dimension.
	items := []Item{
		item("1", "Spring Rolls", "Chinese", "Starters", 120),
		item("2", "Paneer Tikka", "Starters", "Veg", 180),
	}

	visible := Apply(items, Query{Filter: "Starters"})
	assert.Equal(t, []string{"1", "2"}, ids(visible))
}

func TestEffectivePrice(t *testing.T) {
	plain := item("1", "Dal Fry", "Main Course", "Veg", 140)
	assert.True(t, decimal.NewFromInt(140).Equal(plain.EffectivePrice()))
	assert.False(t, plain.Discounted())

	discounted := plain
	discounted.DiscountPrice = decimal.NewFromInt(99)
	assert.True(t, decimal.NewFromInt(99).Equal(discounted.EffectivePrice()))
	assert.True(t, discounted.Discounted())
}

func TestFacets(t *testing.T) {
	items := []Item{
		item("1", "Paneer Tikka", "Starters", "Veg", 180),
		item("2", "Chicken Biryani", "Main Course", "Non-Veg", 250),
		item("3", "Samosa", "Starters", "Veg", 25),
	}

	categories, subCategories := Facets(items)
	assert.Equal(t, []string{"Starters", "Main Course"}, categories)
	assert.Equal(t, []string{"Veg", "Non-Veg"}, subCategories)
}
