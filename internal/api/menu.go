package api

import (
	"net/http"

	"github.com/xenking/menucart/internal/domain/catalog"
	"github.com/xenking/menucart/internal/promo"
	"github.com/xenking/menucart/internal/view"
)

type itemDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	SubCategory   string  `json:"subCategory,omitempty"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discountPrice,omitempty"`
	Tag           string  `json:"tag,omitempty"`
	Image         string  `json:"image,omitempty"`
	Description   string  `json:"description,omitempty"`
}

func toItemDTO(it catalog.Item) itemDTO {
	return itemDTO{
		ID:            it.ID,
		Name:          it.Name,
		Category:      it.Category,
		SubCategory:   it.SubCategory,
		Price:         it.Price.InexactFloat64(),
		DiscountPrice: it.DiscountPrice.InexactFloat64(),
		Tag:           it.Tag,
		Image:         it.Image,
		Description:   it.Description,
	}
}

type menuEntryDTO struct {
	itemDTO
	CartQuantity int `json:"cartQuantity"`
}

type menuPageDTO struct {
	Items     []menuEntryDTO `json:"items"`
	CartCount int            `json:"cartCount"`
}

// getMenu renders the catalog grid for the caller's session. Query params
// `search` and `filter` narrow the grid; `filter` accepts a category, a
// subcategory, or the under100 price band.
func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	s := h.sess(w, r)

	q := catalog.Query{
		Search: r.URL.Query().Get("search"),
		Filter: r.URL.Query().Get("filter"),
	}
	page := view.Menu(h.catalog, s.Store, q)

	out := menuPageDTO{
		Items:     make([]menuEntryDTO, len(page.Entries)),
		CartCount: page.CartCount,
	}
	for i, e := range page.Entries {
		out.Items[i] = menuEntryDTO{itemDTO: toItemDTO(e.Item), CartQuantity: e.CartQuantity}
	}
	writeJSON(w, r, http.StatusOK, out)
}

type categoriesDTO struct {
	Categories    []string `json:"categories"`
	SubCategories []string `json:"subCategories"`
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	cats, subs := catalog.Facets(h.catalog.List())
	writeJSON(w, r, http.StatusOK, categoriesDTO{Categories: cats, SubCategories: subs})
}

type promotionsDTO struct {
	Current promo.Offer   `json:"current"`
	Offers  []promo.Offer `json:"offers"`
}

func (h *Handler) getPromotions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, promotionsDTO{
		Current: h.promos.Current(),
		Offers:  h.promos.Offers(),
	})
}
