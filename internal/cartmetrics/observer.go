// Package cartmetrics publishes cart and order activity as OpenTelemetry
// counters.
package cartmetrics

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/menucart/internal/domain/cart"
)

// Metrics holds the instrument handles. One instance serves every session;
// observers are bound per store via CartObserver.
type Metrics struct {
	cartMutations metric.Int64Counter
	ordersPlaced  metric.Int64Counter
	lg            *zap.Logger
}

// New registers the instruments on the given meter.
func New(meter metric.Meter, lg *zap.Logger) (*Metrics, error) {
	mutations, err := meter.Int64Counter("cart.mutations",
		metric.WithDescription("Cart mutations observed across all sessions"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "cart.mutations counter")
	}
	placed, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Orders successfully submitted"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "orders.placed counter")
	}
	return &Metrics{cartMutations: mutations, ordersPlaced: placed, lg: lg}, nil
}

// CartObserver returns an observer to subscribe on a session's cart store.
// It runs under the store lock, so it only counts and logs.
func (m *Metrics) CartObserver() cart.Observer {
	return func(c cart.Cart) {
		m.cartMutations.Add(context.Background(), 1)
		m.lg.Debug("cart mutated",
			zap.Int("lines", len(c.Lines)),
			zap.Int("total_items", c.TotalItems),
			zap.String("total_amount", c.TotalAmount.String()),
		)
	}
}

// OrderPlaced records one successful submission.
func (m *Metrics) OrderPlaced(ctx context.Context) {
	m.ordersPlaced.Add(ctx, 1)
}
