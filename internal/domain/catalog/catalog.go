package catalog

import (
	"github.com/shopspring/decimal"
)

// Item represents a menu catalog record. Items are immutable: the provider
// owns them and nothing in the cart or order path ever writes back.
type Item struct {
	ID            string
	Name          string
	Category      string
	SubCategory   string
	Price         decimal.Decimal
	DiscountPrice decimal.Decimal // zero when the item is not discounted
	Tag           string
	Image         string
	Description   string
}

// Discounted reports whether the item carries a discounted price.
func (i Item) Discounted() bool {
	return i.DiscountPrice.IsPositive()
}

// EffectivePrice returns the discounted price when present, otherwise the
// list price. This is the price a cart line is charged at.
func (i Item) EffectivePrice() decimal.Decimal {
	if i.Discounted() {
		return i.DiscountPrice
	}
	return i.Price
}

// Provider supplies the read-only menu catalog. Implementations must return
// items in a stable order.
type Provider interface {
	List() []Item
	Get(id string) (Item, bool)
}

// Facets returns the distinct categories and sub-categories across items,
// each in first-seen order. The menu filter bar is built from these.
func Facets(items []Item) (categories, subCategories []string) {
	seenCat := make(map[string]struct{})
	seenSub := make(map[string]struct{})
	for _, it := range items {
		if _, ok := seenCat[it.Category]; !ok && it.Category != "" {
			seenCat[it.Category] = struct{}{}
			categories = append(categories, it.Category)
		}
		if _, ok := seenSub[it.SubCategory]; !ok && it.SubCategory != "" {
			seenSub[it.SubCategory] = struct{}{}
			subCategories = append(subCategories, it.SubCategory)
		}
	}
	return categories, subCategories
}
