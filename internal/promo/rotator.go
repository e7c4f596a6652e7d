// Package promo rotates the promotional offer cards shown above the menu.
package promo

import (
	"context"
	"sync/atomic"
	"time"
)

// Offer is a single promotional card.
type Offer struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultOffers is the built-in card deck.
var DefaultOffers = []Offer{
	{Title: "Limited Time Offers!", Description: "Get flat 20% off on all orders above ₹499."},
	{Title: "Weekend Specials!", Description: "Buy one get one free on selected snacks."},
	{Title: "Family Meals", Description: "Combo thalis for four starting at ₹599."},
	{Title: "Happy Hours!", Description: "Beverages at half price, 4 PM to 7 PM."},
}

// Rotator cycles through a fixed deck of offers at a steady interval. The
// current offer is safe to read from any goroutine.
type Rotator struct {
	offers   []Offer
	interval time.Duration
	idx      atomic.Int64
}

// NewRotator builds a rotator over the given deck. An empty deck falls back
// to DefaultOffers.
func NewRotator(offers []Offer, interval time.Duration) *Rotator {
	if len(offers) == 0 {
		offers = DefaultOffers
	}
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Rotator{offers: offers, interval: interval}
}

// Run advances the rotation until ctx is done. It always returns nil so it
// can sit in an errgroup next to the servers.
func (r *Rotator) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.advance()
		}
	}
}

func (r *Rotator) advance() {
	r.idx.Store((r.idx.Load() + 1) % int64(len(r.offers)))
}

// Current returns the offer on display.
func (r *Rotator) Current() Offer {
	return r.offers[r.idx.Load()]
}

// Offers returns the full deck in rotation order.
func (r *Rotator) Offers() []Offer {
	out := make([]Offer, len(r.offers))
	copy(out, r.offers)
	return out
}
