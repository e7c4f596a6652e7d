package api

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/menucart/internal/domain/order"
)

type receiptDTO struct {
	OrderID      string  `json:"orderId"`
	DocumentName string  `json:"documentName"`
	HandoffURL   string  `json:"handoffUrl"`
	TotalItems   int     `json:"totalItems"`
	TotalAmount  float64 `json:"totalAmount"`
	PlacedAt     string  `json:"placedAt"`
	ETASeconds   int     `json:"etaSeconds"`
}

// submitOrder runs the session's submission workflow: the order document is
// written, the WhatsApp handoff URL is returned for the client to open, the
// cart empties, and the delivery countdown restarts.
func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)

	receipt, err := s.Workflow.Submit(r.Context())
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			writeError(w, r, http.StatusBadRequest, "cart is empty")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "order submission failed")
		return
	}

	h.metrics.OrderPlaced(r.Context())
	writeJSON(w, r, http.StatusOK, receiptDTO{
		OrderID:      receipt.OrderID,
		DocumentName: receipt.DocumentName,
		HandoffURL:   receipt.Locator,
		TotalItems:   receipt.TotalItems,
		TotalAmount:  receipt.TotalAmount.InexactFloat64(),
		PlacedAt:     receipt.PlacedAt.Format(time.RFC3339),
		ETASeconds:   receipt.ETASeconds,
	})
}

type deliveryDTO struct {
	RemainingSeconds int  `json:"remainingSeconds"`
	Delivered        bool `json:"delivered"`
}

func (h *Handler) getDelivery(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)

	remaining, delivered := s.Workflow.Countdown().Status()
	writeJSON(w, r, http.StatusOK, deliveryDTO{
		RemainingSeconds: remaining,
		Delivered:        delivered,
	})
}
