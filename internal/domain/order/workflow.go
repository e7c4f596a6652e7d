package order

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/menucart/internal/domain/cart"
)

// State enumerates the submission workflow states.
type State int32

const (
	StateIdle State = iota
	StateSubmitting
	StateAwaitingHandoff
	StateCompleted
)

// String implements fmt.Stringer for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateAwaitingHandoff:
		return "awaiting_handoff"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ErrEmptyCart is returned when submission is attempted with no cart lines.
// The transition is refused with no side effects; callers treat it as a
// no-op rather than a failure.
var ErrEmptyCart = errors.New("cart is empty")

// Receipt is the result of a successful submission.
type Receipt struct {
	OrderID      string
	DocumentName string
	Locator      string
	TotalItems   int
	TotalAmount  decimal.Decimal
	PlacedAt     time.Time
	ETASeconds   int
}

// Workflow drives one session's order submission through
// Idle → Submitting → AwaitingHandoff → Completed.
type Workflow struct {
	mu        sync.Mutex
	state     atomic.Int32
	store     *cart.Store
	documents DocumentStore
	handoff   Handoff
	countdown *Countdown
	now       func() time.Time
	lg        *zap.Logger
}

// NewWorkflow wires a workflow to its session's cart store, the document
// store, and the handoff target.
func NewWorkflow(store *cart.Store, documents DocumentStore, handoff Handoff, lg *zap.Logger) *Workflow {
	return &Workflow{
		store:     store,
		documents: documents,
		handoff:   handoff,
		countdown: NewCountdown(),
		now:       time.Now,
		lg:        lg,
	}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	return State(w.state.Load())
}

// Countdown exposes the delivery countdown for status reads.
func (w *Workflow) Countdown() *Countdown {
	return w.countdown
}

// Submit runs a full submission: snapshot the cart, render and save the
// document, build the handoff locator, clear the cart, and restart the
// delivery countdown.
//
// An empty cart returns ErrEmptyCart with no side effects. A document save
// failure aborts before the cart is touched, so nothing is lost. Concurrent
// submissions serialize on the workflow mutex; the later one observes the
// cleared cart and gets ErrEmptyCart, which makes re-entry idempotent with
// respect to the clear.
func (w *Workflow) Submit(ctx context.Context) (*Receipt, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	snapCart := w.store.Snapshot()
	if len(snapCart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	w.state.Store(int32(StateSubmitting))
	placedAt := w.now()
	snap := TakeSnapshot(snapCart, placedAt)

	name := DocumentName(placedAt)
	if err := w.documents.Save(ctx, name, RenderDocument(snap)); err != nil {
		w.state.Store(int32(StateIdle))
		return nil, errors.Wrap(err, "save order document")
	}

	w.state.Store(int32(StateAwaitingHandoff))
	// Fire and forget: the locator is handed to the client to open; no
	// delivery confirmation is awaited.
	locator := w.handoff.Locator(name)

	w.store.Clear()
	w.countdown.Reset(context.WithoutCancel(ctx))
	w.state.Store(int32(StateCompleted))

	w.lg.Info("order placed",
		zap.String("document", name),
		zap.Int("lines", len(snap.Lines)),
		zap.String("total", snap.TotalAmount.String()),
	)

	return &Receipt{
		OrderID:      uuid.New().String(),
		DocumentName: name,
		Locator:      locator,
		TotalItems:   snap.TotalItems,
		TotalAmount:  snap.TotalAmount,
		PlacedAt:     placedAt,
		ETASeconds:   DeliveryETA,
	}, nil
}

// Close stops the delivery countdown. Called on session teardown.
func (w *Workflow) Close() {
	w.countdown.Stop()
}
