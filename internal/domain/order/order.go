// Package order implements the submission workflow: snapshot the cart,
// render a shareable order document, hand it off to the external messaging
// channel, clear the cart, and run the cosmetic delivery countdown.
package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/menucart/internal/domain/cart"
)

// Snapshot is an immutable copy of the cart taken at submission time. The
// live cart is cleared independently and may diverge afterwards; the
// snapshot is what the document and handoff are generated from.
type Snapshot struct {
	Lines       []cart.Line
	TotalItems  int
	TotalAmount decimal.Decimal
	TakenAt     time.Time
}

// TakeSnapshot copies c into a Snapshot stamped with the given time.
func TakeSnapshot(c cart.Cart, at time.Time) Snapshot {
	lines := make([]cart.Line, len(c.Lines))
	copy(lines, c.Lines)
	return Snapshot{
		Lines:       lines,
		TotalItems:  c.TotalItems,
		TotalAmount: c.TotalAmount,
		TakenAt:     at,
	}
}

// DocumentStore persists rendered order documents under their document name.
type DocumentStore interface {
	Save(ctx context.Context, name, content string) error
}
