// Package api exposes the menu, cart, and order surfaces over HTTP. Every
// cart and order route is scoped to the caller's session cookie; menu routes
// read the shared catalog.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xenking/menucart/internal/cartmetrics"
	"github.com/xenking/menucart/internal/domain/catalog"
	"github.com/xenking/menucart/internal/promo"
	"github.com/xenking/menucart/internal/session"
)

// SessionCookie names the cookie carrying the session ID.
const SessionCookie = "menucart_session"

// Handler wires the HTTP routes to the domain.
type Handler struct {
	catalog  catalog.Provider
	sessions *session.Manager
	promos   *promo.Rotator
	metrics  *cartmetrics.Metrics
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(
	provider catalog.Provider,
	sessions *session.Manager,
	promos *promo.Rotator,
	metrics *cartmetrics.Metrics,
) *Handler {
	return &Handler{
		catalog:  provider,
		sessions: sessions,
		promos:   promos,
		metrics:  metrics,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/menu", h.getMenu)
	r.Get("/menu/categories", h.getCategories)
	r.Get("/promotions", h.getPromotions)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Get("/suggestions", h.getSuggestions)
		r.Post("/items", h.addItem)
		r.Route("/items/{itemID}", func(r chi.Router) {
			r.Put("/", h.setQuantity)
			r.Delete("/", h.removeItem)
			r.Post("/decrement", h.decrementItem)
			r.Put("/note", h.setNote)
		})
	})

	r.Post("/orders", h.submitOrder)
	r.Get("/orders/delivery", h.getDelivery)

	return r
}

// sess resolves the caller's session from the request cookie, setting a fresh
// cookie when the manager mints a new identity.
func (h *Handler) sess(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	s := h.sessions.Get(id)
	if s.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    s.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s
}
