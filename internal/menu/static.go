// Package menu provides the concrete catalog providers: a file loader for
// db.json-style menus (optionally gzip-compressed) and an embedded default
// menu.
package menu

import (
	"github.com/go-faster/errors"

	"github.com/xenking/menucart/internal/domain/catalog"
)

// Static is an immutable in-memory catalog provider.
type Static struct {
	items []catalog.Item
	byID  map[string]catalog.Item
}

var _ catalog.Provider = (*Static)(nil)

// NewStatic validates the items and builds a provider over them. Validation
// rules: non-empty unique IDs, non-empty names, non-negative prices, and a
// discounted price that never exceeds the list price.
func NewStatic(items []catalog.Item) (*Static, error) {
	byID := make(map[string]catalog.Item, len(items))
	for i, it := range items {
		switch {
		case it.ID == "":
			return nil, errors.Errorf("item %d: empty id", i)
		case it.Name == "":
			return nil, errors.Errorf("item %q: empty name", it.ID)
		case it.Price.IsNegative():
			return nil, errors.Errorf("item %q: negative price %s", it.ID, it.Price)
		case it.DiscountPrice.IsNegative():
			return nil, errors.Errorf("item %q: negative discount price %s", it.ID, it.DiscountPrice)
		case it.DiscountPrice.GreaterThan(it.Price):
			return nil, errors.Errorf("item %q: discount price %s exceeds price %s", it.ID, it.DiscountPrice, it.Price)
		}
		if _, dup := byID[it.ID]; dup {
			return nil, errors.Errorf("duplicate item id %q", it.ID)
		}
		byID[it.ID] = it
	}

	return &Static{items: items, byID: byID}, nil
}

// List returns the catalog in load order. The slice is a copy; the catalog
// itself is never mutated.
func (s *Static) List() []catalog.Item {
	out := make([]catalog.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given ID.
func (s *Static) Get(id string) (catalog.Item, bool) {
	it, ok := s.byID[id]
	return it, ok
}

// Len returns the number of catalog items.
func (s *Static) Len() int {
	return len(s.items)
}
