package view

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/menucart/internal/domain/cart"
	"github.com/xenking/menucart/internal/domain/catalog"
)

// CartLine is a cart entry enriched with catalog presentation data. Orphaned
// lines (unknown item IDs) carry empty presentation fields.
type CartLine struct {
	cart.Line
	Image       string
	SubCategory string
}

// CartPage is the cart page read model.
type CartPage struct {
	Lines       []CartLine
	TotalItems  int
	TotalAmount decimal.Decimal
	// DisplayTotal is TotalAmount formatted to two decimal places.
	DisplayTotal string
	// Suggestions is the "more items you may like" strip: the full catalog,
	// independent of whatever menu filters are active.
	Suggestions []catalog.Item
}

// Cart builds the cart page from a fresh store snapshot.
func Cart(provider catalog.Provider, store *cart.Store) CartPage {
	snap := store.Snapshot()

	lines := make([]CartLine, len(snap.Lines))
	for i, l := range snap.Lines {
		cl := CartLine{Line: l}
		if it, ok := provider.Get(l.ItemID); ok {
			cl.Image = it.Image
			cl.SubCategory = it.SubCategory
		}
		lines[i] = cl
	}

	return CartPage{
		Lines:        lines,
		TotalItems:   snap.TotalItems,
		TotalAmount:  snap.TotalAmount,
		DisplayTotal: snap.TotalAmount.StringFixed(2),
		Suggestions:  provider.List(),
	}
}
