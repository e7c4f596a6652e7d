package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xenking/menucart/internal/view"
)

type cartLineDTO struct {
	ItemID      string  `json:"itemId"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Note        string  `json:"note,omitempty"`
	Image       string  `json:"image,omitempty"`
	SubCategory string  `json:"subCategory,omitempty"`
}

type cartPageDTO struct {
	Lines       []cartLineDTO `json:"lines"`
	TotalItems  int           `json:"totalItems"`
	TotalAmount string        `json:"totalAmount"`
}

func toCartPageDTO(page view.CartPage) cartPageDTO {
	out := cartPageDTO{
		Lines:       make([]cartLineDTO, len(page.Lines)),
		TotalItems:  page.TotalItems,
		TotalAmount: page.DisplayTotal,
	}
	for i, l := range page.Lines {
		out.Lines[i] = cartLineDTO{
			ItemID:      l.ItemID,
			Name:        l.Name,
			UnitPrice:   l.UnitPrice.InexactFloat64(),
			Quantity:    l.Quantity,
			Note:        l.Note,
			Image:       l.Image,
			SubCategory: l.SubCategory,
		}
	}
	return out
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)
	writeJSON(w, r, http.StatusOK, toCartPageDTO(view.Cart(h.catalog, s.Store)))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)
	s.Store.Clear()
	writeJSON(w, r, http.StatusOK, toCartPageDTO(view.Cart(h.catalog, s.Store)))
}

func (h *Handler) getSuggestions(w http.ResponseWriter, r *http.Request) {
	h.sess(w, r)

	items := h.catalog.List()
	out := make([]itemDTO, len(items))
	for i, it := range items {
		out[i] = toItemDTO(it)
	}
	writeJSON(w, r, http.StatusOK, out)
}

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

// addItem puts one unit of the item into the cart, stacking onto an existing
// line. Unknown item IDs are rejected here; only the store itself tolerates
// orphans.
func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, ok := h.catalog.Get(req.ItemID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "item not found")
		return
	}

	s.Store.AddItem(item)
	writeJSON(w, r, http.StatusOK, toCartPageDTO(view.Cart(h.catalog, s.Store)))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	s.Store.SetQuantity(chi.URLParam(r, "itemID"), req.Quantity)
	writeJSON(w, r, http.StatusOK, toCartPageDTO(view.Cart(h.catalog, s.Store)))
}

func (h *Handler) decrementItem(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)
	s.Store.DecrementOrRemove(chi.URLParam(r, "itemID"))
	writeJSON(w, r, http.StatusOK, toCartPageDTO(view.Cart(h.catalog, s.Store)))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)
	s.Store.RemoveItem(chi.URLParam(r, "itemID"))
	writeJSON(w, r, http.StatusOK, toCartPageDTO(view.Cart(h.catalog, s.Store)))
}

type setNoteRequest struct {
	Note string `json:"note"`
}

func (h *Handler) setNote(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)

	var req setNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	s.Store.SetCustomization(chi.URLParam(r, "itemID"), req.Note)
	writeJSON(w, r, http.StatusOK, toCartPageDTO(view.Cart(h.catalog, s.Store)))
}
