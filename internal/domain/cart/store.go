package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xenking/menucart/internal/domain/catalog"
)

// Observer receives a snapshot of the cart after a mutation. Observers run
// synchronously, in registration order, while the store lock is held — they
// must not call back into the Store.
type Observer func(Cart)

// Store is the single source of truth for one session's cart. All operations
// are serialized by an internal mutex, so no mutation interleaves with
// another and every observer sees each change before the next one starts.
//
// No operation can fail: mutating an absent line is a no-op, and item IDs
// are deliberately not validated against the catalog — SetQuantity on an
// unknown ID creates an orphaned line. That is an accepted simplification,
// not an error to surface.
type Store struct {
	mu        sync.Mutex
	lines     []Line
	observers []Observer
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers fn to be called after every mutation. Subscription
// order is notification order.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// AddItem increments the quantity of the line for item, inserting a new
// quantity-1 line in first-seen order when none exists. Always succeeds.
func (s *Store) AddItem(item catalog.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l := s.find(item.ID); l != nil {
		l.Quantity++
	} else {
		s.lines = append(s.lines, Line{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.EffectivePrice(),
			Quantity:  1,
		})
	}
	s.notify()
}

// SetQuantity sets the line for itemID to exactly quantity. A quantity <= 0
// removes the line (no-op when absent). Setting a quantity for an unknown
// item ID inserts an orphaned line with no name and a zero price.
func (s *Store) SetQuantity(itemID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		if !s.remove(itemID) {
			return
		}
		s.notify()
		return
	}

	if l := s.find(itemID); l != nil {
		l.Quantity = quantity
	} else {
		s.lines = append(s.lines, Line{
			ItemID:    itemID,
			UnitPrice: decimal.Zero,
			Quantity:  quantity,
		})
	}
	s.notify()
}

// DecrementOrRemove lowers the line's quantity by one, removing the line
// entirely at quantity 1. No-op when no line exists.
func (s *Store) DecrementOrRemove(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(itemID)
	if l == nil {
		return
	}
	if l.Quantity > 1 {
		l.Quantity--
	} else {
		s.remove(itemID)
	}
	s.notify()
}

// RemoveItem removes the line for itemID. No-op when absent.
func (s *Store) RemoveItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.remove(itemID) {
		return
	}
	s.notify()
}

// SetCustomization attaches free-text to the line. No-op when the line does
// not exist; the note does not create lines.
func (s *Store) SetCustomization(itemID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(itemID)
	if l == nil {
		return
	}
	l.Note = text
	s.notify()
}

// Clear empties the cart and notifies subscribers.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.notify()
}

// Snapshot returns the cart by value: a copy of the lines plus totals
// recomputed now. Mutating the returned value never affects the store.
func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() Cart {
	c := Cart{
		Lines:       make([]Line, len(s.lines)),
		TotalAmount: decimal.Zero,
	}
	copy(c.Lines, s.lines)
	for _, l := range s.lines {
		c.TotalItems += l.Quantity
		c.TotalAmount = c.TotalAmount.Add(l.Subtotal())
	}
	return c
}

// notify broadcasts the current cart to every observer. Caller holds s.mu.
func (s *Store) notify() {
	c := s.snapshot()
	for _, fn := range s.observers {
		fn(c)
	}
}

func (s *Store) find(itemID string) *Line {
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			return &s.lines[i]
		}
	}
	return nil
}

func (s *Store) remove(itemID string) bool {
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return true
		}
	}
	return false
}
