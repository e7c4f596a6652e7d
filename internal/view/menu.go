// Package view builds the read models behind the two display surfaces: the
// catalog grid and the cart page. Views only read — every mutation goes
// through the cart store.
package view

import (
	"github.com/xenking/menucart/internal/domain/cart"
	"github.com/xenking/menucart/internal/domain/catalog"
)

// MenuEntry pairs a visible catalog item with the viewer's current cart
// quantity (0 when the item is not in the cart).
type MenuEntry struct {
	Item         catalog.Item
	CartQuantity int
}

// MenuPage is the catalog grid read model.
type MenuPage struct {
	Entries []MenuEntry
	// CartCount feeds the floating cart badge: the sum of all quantities.
	CartCount int
}

// Menu derives the visible item list from the full catalog and joins each
// item against the cart store. The join is redone on every call — per-item,
// per-render lookups, never a cached projection.
func Menu(provider catalog.Provider, store *cart.Store, q catalog.Query) MenuPage {
	visible := catalog.Apply(provider.List(), q)
	snap := store.Snapshot()

	quantities := make(map[string]int, len(snap.Lines))
	for _, l := range snap.Lines {
		quantities[l.ItemID] = l.Quantity
	}

	entries := make([]MenuEntry, len(visible))
	for i, it := range visible {
		entries[i] = MenuEntry{Item: it, CartQuantity: quantities[it.ID]}
	}

	return MenuPage{Entries: entries, CartCount: snap.TotalItems}
}
