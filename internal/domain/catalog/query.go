package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilterUnder100 is the reserved filter value selecting items priced below
// 100 currency units. It is a filter mode layered on top of the category
// dimension, never a category value, so a real category with the same name
// cannot be selected through it.
const FilterUnder100 = "under100"

var under100Limit = decimal.NewFromInt(100)

// Query is the conjunction of a free-text search and a category filter.
// An item is visible iff it passes both predicates independently.
type Query struct {
	// Search matches case-insensitively against name, category, sub-category,
	// or the list price rendered as text. Empty matches everything.
	Search string
	// Filter is empty (match all), a category, a sub-category, or the
	// FilterUnder100 sentinel.
	Filter string
}

// Matches reports whether item satisfies both predicates.
func (q Query) Matches(item Item) bool {
	return q.matchesSearch(item) && q.matchesFilter(item)
}

func (q Query) matchesSearch(item Item) bool {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Category), needle) ||
		strings.Contains(strings.ToLower(item.SubCategory), needle) ||
		strings.Contains(item.Price.String(), needle)
}

func (q Query) matchesFilter(item Item) bool {
	switch q.Filter {
	case "":
		return true
	case FilterUnder100:
		return item.Price.LessThan(under100Limit)
	default:
		return item.Category == q.Filter || item.SubCategory == q.Filter
	}
}

// Apply returns the items matching q, preserving catalog order. The visible
// list is always re-derived from the full catalog; nothing is cached.
func Apply(items []Item, q Query) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if q.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}
