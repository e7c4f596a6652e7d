package order

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/menucart/internal/domain/cart"
)

func snapshotFixture(t *testing.T) Snapshot {
	t.Helper()
	c := cart.Cart{
		Lines: []cart.Line{
			{ItemID: "b1", Name: "Burger", UnitPrice: decimal.NewFromInt(120), Quantity: 2},
			{ItemID: "f1", Name: "Fries", UnitPrice: decimal.NewFromInt(60), Quantity: 1},
		},
		TotalItems:  3,
		TotalAmount: decimal.NewFromInt(300),
	}
	return TakeSnapshot(c, time.Date(2026, 8, 31, 13, 45, 12, 0, time.UTC))
}

func TestDocumentName(t *testing.T) {
	at := time.Date(2026, 8, 31, 13, 45, 12, 0, time.UTC)
	assert.Equal(t, "Order_20260831_1345.txt", DocumentName(at))

	// Seconds do not participate: same-minute orders collide by design.
	later := at.Add(40 * time.Second)
	assert.Equal(t, DocumentName(at), DocumentName(later))
}

func TestRenderDocument(t *testing.T) {
	doc := RenderDocument(snapshotFixture(t))

	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	require.Len(t, lines, 4, "title + one per cart line + total")
	assert.Equal(t, "Order Summary", lines[0])
	assert.Equal(t, "1. Burger x 2 - ₹120", lines[1])
	assert.Equal(t, "2. Fries x 1 - ₹60", lines[2])
	assert.Equal(t, "Total: ₹300", lines[3])
}

func TestRenderDocument_Stable(t *testing.T) {
	snap := snapshotFixture(t)
	assert.Equal(t, RenderDocument(snap), RenderDocument(snap))
}

func TestTakeSnapshot_CopiesLines(t *testing.T) {
	c := cart.Cart{
		Lines:       []cart.Line{{ItemID: "b1", Name: "Burger", UnitPrice: decimal.NewFromInt(120), Quantity: 1}},
		TotalItems:  1,
		TotalAmount: decimal.NewFromInt(120),
	}
	snap := TakeSnapshot(c, time.Now())

	c.Lines[0].Quantity = 99
	assert.Equal(t, 1, snap.Lines[0].Quantity)
}

func TestHandoffLocator(t *testing.T) {
	h := Handoff{
		Endpoint:        "https://wa.me/8668722207",
		DocumentBaseURL: "https://menucart.example.com/orders",
	}

	locator := h.Locator("Order_20260831_1345.txt")
	assert.Equal(t,
		"https://wa.me/8668722207?text=Order+document%3A+https%3A%2F%2Fmenucart.example.com%2Forders%2FOrder_20260831_1345.txt",
		locator,
	)
}
