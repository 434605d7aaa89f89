package command

import (
	"context"
	"strings"

	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/domain/view"
	"github.com/example/watchhaven/internal/session"
	"github.com/google/uuid"
)

type Handler struct {
	catalog  *catalog.Store
	sessions *session.Manager
}

func NewHandler(catalogStore *catalog.Store, sessions *session.Manager) *Handler {
	return &Handler{
		catalog:  catalogStore,
		sessions: sessions,
	}
}

// AddProduct applies the admin form defaults, assigns a fresh id and
// prepends the product to the catalog
func (h *Handler) AddProduct(ctx context.Context, cmd AddProduct) (catalog.Product, error) {
	p := cmd.Product.Normalize()
	if err := p.Validate(); err != nil {
		return catalog.Product{}, err
	}
	p.ID = uuid.New().String()

	h.catalog.Add(ctx, p)
	return p, nil
}

// UpdateProduct replaces the product with the same id. The bool is false
// when no product matched.
func (h *Handler) UpdateProduct(ctx context.Context, cmd UpdateProduct) (catalog.Product, bool, error) {
	p := cmd.Product.Normalize()
	if err := p.Validate(); err != nil {
		return catalog.Product{}, false, err
	}
	if !h.catalog.Update(ctx, p) {
		return catalog.Product{}, false, nil
	}
	return p, true, nil
}

// DeleteProduct removes a product once the confirmer agrees
func (h *Handler) DeleteProduct(ctx context.Context, cmd DeleteProduct) bool {
	return h.catalog.Delete(ctx, cmd.ProductID, cmd.Confirm)
}

// AddToCart snapshots the current catalog entry into the session cart
func (h *Handler) AddToCart(ctx context.Context, cmd AddToCart) error {
	p, ok := h.catalog.Get(cmd.ProductID)
	if !ok {
		return catalog.ErrProductNotFound
	}
	return h.sessions.Get(cmd.SessionID).Cart.Add(ctx, p, cmd.Quantity)
}

func (h *Handler) ChangeQuantity(ctx context.Context, cmd ChangeQuantity) bool {
	return h.sessions.Get(cmd.SessionID).Cart.UpdateQuantity(ctx, cmd.ProductID, cmd.Delta)
}

func (h *Handler) RemoveFromCart(ctx context.Context, cmd RemoveFromCart) bool {
	return h.sessions.Get(cmd.SessionID).Cart.Remove(ctx, cmd.ProductID)
}

func (h *Handler) ClearCart(ctx context.Context, cmd ClearCart) {
	h.sessions.Get(cmd.SessionID).Cart.Clear(ctx)
}

// Navigate moves the session router. Only the view name and category can
// be rejected; the router itself never fails.
func (h *Handler) Navigate(cmd Navigate) (view.State, error) {
	v, err := view.ParseView(cmd.View)
	if err != nil {
		return view.State{}, err
	}

	router := h.sessions.Get(cmd.SessionID).Router
	switch v {
	case view.Home:
		router.Home()
	case view.Category:
		var c catalog.Category
		if name := strings.TrimSpace(cmd.Category); name != "" {
			if c, err = catalog.ParseCategory(name); err != nil {
				return view.State{}, err
			}
		}
		router.Category(c)
	case view.Product:
		router.Product(strings.TrimSpace(cmd.ProductID))
	case view.Cart:
		router.Cart()
	case view.Admin:
		router.Admin()
	}

	return router.Resolve(h.exists), nil
}

func (h *Handler) exists(id string) bool {
	_, ok := h.catalog.Get(id)
	return ok
}
