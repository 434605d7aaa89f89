package query

import (
	"context"
	"testing"

	"github.com/example/watchhaven/internal/domain/cart"
	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/domain/view"
	"github.com/example/watchhaven/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueryHandler(t *testing.T) (*Handler, *catalog.Store, *session.Manager) {
	t.Helper()
	seed, err := catalog.LoadSeed()
	require.NoError(t, err)

	store := catalog.NewStore(nil, seed)
	sessions := session.NewManager(nil)
	return NewHandler(store, sessions), store, sessions
}

func ids(products []catalog.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// ============================================
// Product Query Tests
// ============================================

func TestHandler_ListProducts_All(t *testing.T) {
	handler, _, _ := newTestQueryHandler(t)

	list := handler.ListProducts("", catalog.SortFeatured)

	assert.Equal(t, 6, list.Count)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(list.Products))
}

func TestHandler_ListProducts_SortOrders(t *testing.T) {
	tests := []struct {
		order catalog.SortOrder
		want  []string
	}{
		{catalog.SortPriceLow, []string{"6", "3", "2", "5", "1", "4"}},
		{catalog.SortPriceHigh, []string{"4", "1", "5", "2", "3", "6"}},
		{catalog.SortNewest, []string{"2", "1", "3", "4", "5", "6"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			handler, _, _ := newTestQueryHandler(t)
			assert.Equal(t, tt.want, ids(handler.ListProducts("", tt.order).Products))
		})
	}
}

func TestHandler_ListProducts_ByCategory(t *testing.T) {
	handler, _, _ := newTestQueryHandler(t)

	list := handler.ListProducts(catalog.Smart, catalog.SortFeatured)

	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "Cosmos V3 Pro", list.Products[0].Name)
}

func TestHandler_ListProducts_DoesNotMutateCatalog(t *testing.T) {
	handler, store, _ := newTestQueryHandler(t)

	handler.ListProducts("", catalog.SortPriceHigh)

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(store.List()))
}

func TestHandler_GetProduct_Found(t *testing.T) {
	handler, store, _ := newTestQueryHandler(t)
	store.Add(context.Background(), catalog.Product{ID: "7", Name: "Field Auto", Brand: "Haven Elite", Category: catalog.Men})

	detail, found := handler.GetProduct("1")

	require.True(t, found)
	assert.Equal(t, "Heritage Chronograph Blue", detail.Product.Name)
	assert.Equal(t, []string{"7"}, ids(detail.Related))
}

func TestHandler_GetProduct_NotFound(t *testing.T) {
	handler, _, _ := newTestQueryHandler(t)

	detail, found := handler.GetProduct("non-existent")

	assert.False(t, found)
	assert.Nil(t, detail)
}

// ============================================
// Cart Query Tests
// ============================================

func TestHandler_GetCart_Empty(t *testing.T) {
	handler, _, _ := newTestQueryHandler(t)

	summary := handler.GetCart("s1")

	assert.Equal(t, cart.GetCartID("s1"), summary.ID)
	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.Subtotal)
	assert.Equal(t, cart.FlatShippingFee, summary.Shipping)
	assert.Equal(t, cart.FlatShippingFee, summary.Total)
	assert.Equal(t, cart.FreeShippingThreshold, summary.FreeShippingRemaining)
}

func TestHandler_GetCart_Totals(t *testing.T) {
	handler, store, sessions := newTestQueryHandler(t)
	ctx := context.Background()
	smart, _ := store.Get("3")
	winder, _ := store.Get("6")
	c := sessions.Get("s1").Cart
	require.NoError(t, c.Add(ctx, smart, 1))
	require.NoError(t, c.Add(ctx, winder, 2))

	summary := handler.GetCart("s1")

	require.Len(t, summary.Items, 2)
	assert.Equal(t, 598.0, summary.Items[1].LineTotal)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 1097.0, summary.Subtotal)
	assert.Zero(t, summary.Shipping)
	assert.Equal(t, 1097.0, summary.Total)
	assert.Zero(t, summary.FreeShippingRemaining)
}

func TestHandler_GetCart_ExactlyThresholdPaysShipping(t *testing.T) {
	handler, store, sessions := newTestQueryHandler(t)
	store.Add(context.Background(), catalog.Product{ID: "500", Name: "Even", Brand: "B", Price: 500, Category: catalog.Men})
	p, _ := store.Get("500")
	require.NoError(t, sessions.Get("s1").Cart.Add(context.Background(), p, 1))

	summary := handler.GetCart("s1")

	assert.Equal(t, cart.FlatShippingFee, summary.Shipping)
	assert.Equal(t, 525.0, summary.Total)
}

// ============================================
// Screen Tests
// ============================================

func TestHandler_Screen_Home(t *testing.T) {
	handler, _, _ := newTestQueryHandler(t)

	screen := handler.Screen("s1", catalog.SortFeatured)

	assert.Equal(t, view.Home, screen.State.Current)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(screen.Featured))
	assert.Equal(t, catalog.Categories(), screen.Categories)
	assert.Nil(t, screen.Cart)
}

func TestHandler_Screen_Category(t *testing.T) {
	handler, _, sessions := newTestQueryHandler(t)
	sessions.Get("s1").Router.Category("")

	screen := handler.Screen("s1", catalog.SortPriceLow)

	require.NotNil(t, screen.List)
	assert.Equal(t, 6, screen.List.Count)
	assert.Equal(t, "6", screen.List.Products[0].ID)
}

func TestHandler_Screen_Product(t *testing.T) {
	handler, _, sessions := newTestQueryHandler(t)
	sessions.Get("s1").Router.Product("4")

	screen := handler.Screen("s1", "")

	require.NotNil(t, screen.Detail)
	assert.Equal(t, "Royal Oak Skeleton", screen.Detail.Product.Name)
	assert.Empty(t, screen.Detail.Related)
}

func TestHandler_Screen_ProductMissingFallsBackHome(t *testing.T) {
	handler, store, sessions := newTestQueryHandler(t)
	sessions.Get("s1").Router.Product("4")
	require.True(t, store.Delete(context.Background(), "4", catalog.Answer(true)))

	screen := handler.Screen("s1", "")

	assert.Equal(t, view.Home, screen.State.Current)
	assert.Nil(t, screen.Detail)
	assert.NotEmpty(t, screen.Featured)
}

func TestHandler_Screen_CartAndAdmin(t *testing.T) {
	handler, _, sessions := newTestQueryHandler(t)

	sessions.Get("s1").Router.Cart()
	screen := handler.Screen("s1", "")
	require.NotNil(t, screen.Cart)
	assert.Nil(t, screen.Products)

	sessions.Get("s1").Router.Admin()
	screen = handler.Screen("s1", "")
	assert.Len(t, screen.Products, 6)
	assert.Nil(t, screen.Cart)
}
