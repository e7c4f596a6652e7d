package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/menucart/internal/cartmetrics"
	"github.com/xenking/menucart/internal/domain/cart"
	"github.com/xenking/menucart/internal/domain/catalog"
	"github.com/xenking/menucart/internal/domain/order"
	"github.com/xenking/menucart/internal/menu"
	"github.com/xenking/menucart/internal/promo"
	"github.com/xenking/menucart/internal/session"
)

type memDocs struct {
	saved map[string]string
}

func (m *memDocs) Save(_ context.Context, name, content string) error {
	if m.saved == nil {
		m.saved = make(map[string]string)
	}
	m.saved[name] = content
	return nil
}

type fixture struct {
	srv  *httptest.Server
	jar  []*http.Cookie
	docs *memDocs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	provider, err := menu.NewStatic([]catalog.Item{
		{ID: "b1", Name: "Burger", Category: "Snacks", SubCategory: "Non-Veg", Price: decimal.NewFromInt(120)},
		{ID: "f1", Name: "Fries", Category: "Snacks", SubCategory: "Veg", Price: decimal.NewFromInt(60)},
		{ID: "d1", Name: "Lassi", Category: "Beverages", SubCategory: "Veg", Price: decimal.NewFromInt(80)},
	})
	require.NoError(t, err)

	lg := zaptest.NewLogger(t)
	metrics, err := cartmetrics.New(noop.NewMeterProvider().Meter("test"), lg)
	require.NoError(t, err)

	docs := &memDocs{}
	handoff := order.Handoff{Endpoint: "https://wa.me/8668722207", DocumentBaseURL: "https://example.test/orders"}
	sessions := session.NewManager(time.Minute, func(store *cart.Store) *order.Workflow {
		store.Subscribe(metrics.CartObserver())
		return order.NewWorkflow(store, docs, handoff, lg)
	}, lg)

	h := NewHandler(provider, sessions, promo.NewRotator(nil, time.Hour), metrics)
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	return &fixture{srv: srv, docs: docs}
}

// do issues a request, replaying and capturing session cookies like a browser.
func (f *fixture) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, f.srv.URL+path, rd)
	require.NoError(t, err)
	for _, c := range f.jar {
		req.AddCookie(c)
	}

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	if cs := resp.Cookies(); len(cs) > 0 {
		f.jar = cs
	}

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, buf.Bytes()
}

func (f *fixture) getJSON(t *testing.T, path string, out any) {
	t.Helper()
	resp, body := f.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "%s: %s", path, body)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestMenu_SearchAndFilter(t *testing.T) {
	f := newFixture(t)

	var page menuPageDTO
	f.getJSON(t, "/menu", &page)
	assert.Len(t, page.Items, 3)

	f.getJSON(t, "/menu?filter=under100", &page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "f1", page.Items[0].ID)

	f.getJSON(t, "/menu?search=bur", &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Burger", page.Items[0].Name)
}

func TestMenu_CartBadgeFollowsSession(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "b1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "b1"})

	var page menuPageDTO
	f.getJSON(t, "/menu", &page)
	assert.Equal(t, 2, page.CartCount)
	assert.Equal(t, 2, page.Items[0].CartQuantity)
}

func TestCategories(t *testing.T) {
	f := newFixture(t)

	var facets categoriesDTO
	f.getJSON(t, "/menu/categories", &facets)
	assert.Equal(t, []string{"Snacks", "Beverages"}, facets.Categories)
	assert.Equal(t, []string{"Non-Veg", "Veg"}, facets.SubCategories)
}

func TestPromotions(t *testing.T) {
	f := newFixture(t)

	var promos promotionsDTO
	f.getJSON(t, "/promotions", &promos)
	assert.Equal(t, promo.DefaultOffers[0], promos.Current)
	assert.Len(t, promos.Offers, len(promo.DefaultOffers))
}

func TestCart_Lifecycle(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "b1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "b1"})
	f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "f1"})

	var page cartPageDTO
	f.getJSON(t, "/cart", &page)
	require.Len(t, page.Lines, 2)
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, "300.00", page.TotalAmount)

	resp, _ = f.do(t, http.MethodPut, "/cart/items/b1/note", setNoteRequest{Note: "extra cheese"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	f.getJSON(t, "/cart", &page)
	assert.Equal(t, "extra cheese", page.Lines[0].Note)

	resp, _ = f.do(t, http.MethodPost, "/cart/items/b1/decrement", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	f.getJSON(t, "/cart", &page)
	assert.Equal(t, 1, page.Lines[0].Quantity)
	assert.Equal(t, "extra cheese", page.Lines[0].Note, "note survives quantity changes")

	resp, _ = f.do(t, http.MethodDelete, "/cart/items/f1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	f.getJSON(t, "/cart", &page)
	assert.Len(t, page.Lines, 1)

	resp, _ = f.do(t, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	f.getJSON(t, "/cart", &page)
	assert.Empty(t, page.Lines)
	assert.Equal(t, "0.00", page.TotalAmount)
}

func TestCart_AddUnknownItem(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var e errorBody
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, http.StatusNotFound, e.Code)
	assert.Equal(t, "item not found", e.Message)
}

func TestCart_SetQuantityZeroRemoves(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "b1"})
	resp, _ := f.do(t, http.MethodPut, "/cart/items/b1", setQuantityRequest{Quantity: 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page cartPageDTO
	f.getJSON(t, "/cart", &page)
	assert.Empty(t, page.Lines)
}

func TestSuggestions_FullCatalog(t *testing.T) {
	f := newFixture(t)

	var items []itemDTO
	f.getJSON(t, "/cart/suggestions", &items)
	assert.Len(t, items, 3)
}

func TestOrder_SubmitAndDelivery(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "b1"})
	f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "f1"})

	resp, body := f.do(t, http.MethodPost, "/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "%s", body)

	var receipt receiptDTO
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.NotEmpty(t, receipt.OrderID)
	assert.Contains(t, receipt.HandoffURL, "https://wa.me/8668722207?text=")
	assert.Equal(t, 2, receipt.TotalItems)
	assert.Equal(t, 600, receipt.ETASeconds)
	require.Contains(t, f.docs.saved, receipt.DocumentName)
	assert.Contains(t, f.docs.saved[receipt.DocumentName], "Total: ₹180")

	var page cartPageDTO
	f.getJSON(t, "/cart", &page)
	assert.Empty(t, page.Lines, "cart is cleared after submission")

	var delivery deliveryDTO
	f.getJSON(t, "/orders/delivery", &delivery)
	assert.False(t, delivery.Delivered)
	assert.Positive(t, delivery.RemainingSeconds)
	assert.LessOrEqual(t, delivery.RemainingSeconds, 600)
}

func TestOrder_EmptyCartRejected(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/orders", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e errorBody
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "cart is empty", e.Message)
}

func TestSessions_AreIsolated(t *testing.T) {
	f := newFixture(t)
	g := &fixture{srv: f.srv, docs: f.docs}

	f.do(t, http.MethodPost, "/cart/items", addItemRequest{ItemID: "b1"})

	var page cartPageDTO
	g.getJSON(t, "/cart", &page)
	assert.Empty(t, page.Lines, "second browser sees its own empty cart")

	f.getJSON(t, "/cart", &page)
	assert.Len(t, page.Lines, 1)
}
