package order

import (
	"fmt"
	"strings"
	"time"
)

// Currency is the symbol rendered in order documents and display totals.
const Currency = "₹"

// DocumentName returns the deterministic name for a document generated at
// the given time: Order_<YYYYMMDD>_<HHmm>.txt. There is no random component,
// so two orders placed in the same minute collide on the same name — an
// accepted limitation of the format.
func DocumentName(at time.Time) string {
	return "Order_" + at.Format("20060102_1504") + ".txt"
}

// RenderDocument renders the human-readable order summary: a title line, one
// line per cart entry, and a total line. The output is a pure function of
// the snapshot — regenerating from an identical snapshot yields
// byte-identical content.
func RenderDocument(snap Snapshot) string {
	var b strings.Builder
	b.WriteString("Order Summary\n")
	for i, l := range snap.Lines {
		fmt.Fprintf(&b, "%d. %s x %d - %s%s\n", i+1, l.Name, l.Quantity, Currency, l.UnitPrice.String())
	}
	fmt.Fprintf(&b, "Total: %s%s\n", Currency, snap.TotalAmount.String())
	return b.String()
}
