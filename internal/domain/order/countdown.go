package order

import (
	"context"
	"sync"
	"time"
)

// DeliveryETA is the number of seconds the delivery countdown starts from on
// each new order.
const DeliveryETA = 600

// Countdown is the per-order delivery timer: purely cosmetic, decremented
// once per second, reset on each new order, never persisted. Reaching zero
// flips the terminal delivered state and stops the ticker.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	started   bool
	delivered bool
	cancel    context.CancelFunc
	interval  time.Duration
}

// NewCountdown returns a countdown ticking at one-second intervals.
func NewCountdown() *Countdown {
	return &Countdown{interval: time.Second}
}

// newCountdownInterval is used by tests to tick faster than wall clock.
func newCountdownInterval(interval time.Duration) *Countdown {
	return &Countdown{interval: interval}
}

// Reset restarts the countdown at DeliveryETA seconds. A countdown still
// running for a previous order is cancelled first, so at most one ticker
// goroutine exists per Countdown.
func (c *Countdown) Reset(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.remaining = DeliveryETA
	c.started = true
	c.delivered = false
	interval := c.interval
	c.mu.Unlock()

	go c.tick(ctx, interval)
}

func (c *Countdown) tick(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.decrement() {
				return
			}
		}
	}
}

// decrement lowers the remaining time by one second and reports whether the
// countdown has finished.
func (c *Countdown) decrement() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.remaining <= 0 {
		return true
	}
	c.remaining--
	if c.remaining == 0 {
		c.delivered = true
		return true
	}
	return false
}

// Status returns the remaining seconds and whether the last order has been
// delivered. Before any order is placed both are zero values.
func (c *Countdown) Status() (remaining int, delivered bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining, c.delivered
}

// Stop cancels the ticker goroutine. Required on session teardown so a
// dangling tick never fires against discarded state. Safe to call multiple
// times.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
