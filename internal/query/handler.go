package query

import (
	"github.com/example/watchhaven/internal/domain/cart"
	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/domain/view"
	"github.com/example/watchhaven/internal/session"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	catalog  *catalog.Store
	sessions *session.Manager
}

func NewHandler(catalogStore *catalog.Store, sessions *session.Manager) *Handler {
	return &Handler{catalog: catalogStore, sessions: sessions}
}

// Products
func (h *Handler) Categories() []catalog.Category {
	return catalog.Categories()
}

// ListProducts filters by category (all when empty) and applies the sort order
func (h *Handler) ListProducts(category catalog.Category, order catalog.SortOrder) ProductList {
	products := catalog.FilterByCategory(h.catalog.List(), category)
	catalog.Sort(products, order)
	return ProductList{
		Category: category,
		Sort:     order,
		Count:    len(products),
		Products: products,
	}
}

func (h *Handler) ListAllProducts() []catalog.Product {
	return h.catalog.List()
}

func (h *Handler) GetProduct(id string) (*ProductDetail, bool) {
	p, ok := h.catalog.Get(id)
	if !ok {
		return nil, false
	}
	return &ProductDetail{
		Product: p,
		Related: catalog.Related(h.catalog.List(), p),
	}, true
}

// Cart
func (h *Handler) GetCart(sessionID string) *CartSummary {
	c := h.sessions.Get(sessionID).Cart
	items := c.Items()

	lines := make([]CartLine, len(items))
	count := 0
	var subtotal float64
	for i, item := range items {
		lines[i] = CartLine{Item: item, LineTotal: item.LineTotal()}
		count += item.Quantity
		subtotal += item.LineTotal()
	}

	shipping := cart.ShippingFor(subtotal)
	return &CartSummary{
		ID:                    c.ID(),
		Items:                 lines,
		Count:                 count,
		Subtotal:              subtotal,
		Shipping:              shipping,
		Total:                 subtotal + shipping,
		FreeShippingRemaining: max(0, cart.FreeShippingThreshold-subtotal),
	}
}

// Screen resolves the session's current view and gathers what it shows.
// order only affects the category view.
func (h *Handler) Screen(sessionID string, order catalog.SortOrder) Screen {
	s := h.sessions.Get(sessionID)
	state := s.Router.Resolve(func(id string) bool {
		_, ok := h.catalog.Get(id)
		return ok
	})

	screen := Screen{State: state}
	switch state.Current {
	case view.Home:
		screen.Featured = catalog.Featured(h.catalog.List())
		screen.Categories = h.Categories()
	case view.Category:
		list := h.ListProducts(state.SelectedCategory, order)
		screen.List = &list
	case view.Product:
		detail, ok := h.GetProduct(state.SelectedProductID)
		if !ok {
			// deleted between resolve and lookup
			log.WithField("product_id", state.SelectedProductID).Debug("[Query] Product vanished during screen build")
			s.Router.Home()
			return h.Screen(sessionID, order)
		}
		screen.Detail = detail
	case view.Cart, view.Checkout:
		screen.Cart = h.GetCart(sessionID)
	case view.Admin:
		screen.Products = h.catalog.List()
	}
	return screen
}
