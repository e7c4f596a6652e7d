// Package cart holds the per-session shopping cart: an insertion-ordered set
// of lines with derived totals, owned by a Store that broadcasts every
// mutation to its subscribers before returning control to the caller.
package cart

import "github.com/shopspring/decimal"

// Line is one cart entry. Invariants, enforced by Store: quantity >= 1 while
// the line exists (reducing to zero removes it), and at most one line per
// item ID.
type Line struct {
	ItemID string
	Name   string
	// UnitPrice is the effective price captured when the line was created:
	// the discounted price if the item had one, the list price otherwise.
	UnitPrice decimal.Decimal
	Quantity  int
	// Note is the free-text customization attached to the line. No
	// validation is applied to its content or length.
	Note string
}

// Subtotal returns quantity times unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a point-in-time copy of the store contents with derived totals.
// The totals are recomputed on every read, never carried as state.
type Cart struct {
	Lines       []Line
	TotalItems  int
	TotalAmount decimal.Decimal
}
