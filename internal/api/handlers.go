package api

import (
	"net/http"
	"strings"

	"github.com/example/watchhaven/internal/command"
	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/media"
	"github.com/example/watchhaven/internal/newsletter"
	"github.com/example/watchhaven/internal/query"
	"github.com/example/watchhaven/internal/share"
	"github.com/go-chi/chi/v5"
)

const checkoutMessage = "Checkout integration would follow here. Using test gateway."

type Options struct {
	// ShareBaseURL prefixes product page links when the client sends none
	ShareBaseURL  string
	MaxImageBytes int64
}

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	newsletter   *newsletter.Service
	resolver     *media.Resolver
	opts         Options
}

func NewHandlers(
	cmdHandler *command.Handler,
	queryHandler *query.Handler,
	newsletterSvc *newsletter.Service,
	resolver *media.Resolver,
	opts Options,
) *Handlers {
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		newsletter:   newsletterSvc,
		resolver:     resolver,
		opts:         opts,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Catalog Handlers

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.Categories())
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	category, err := parseCategoryParam(r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	order := catalog.ParseSortOrder(r.URL.Query().Get("sort"))

	respondJSON(w, http.StatusOK, h.queryHandler.ListProducts(category, order))
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	detail, ok := h.queryHandler.GetProduct(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, r, catalog.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *Handlers) ShareProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, ok := h.queryHandler.GetProduct(id)
	if !ok {
		respondError(w, r, catalog.ErrProductNotFound)
		return
	}

	pageURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if pageURL == "" {
		pageURL = share.PageURL(h.opts.ShareBaseURL, id)
	}
	respondJSON(w, http.StatusOK, share.Build(detail.Product, pageURL))
}

// View Handlers

func (h *Handlers) GetScreen(w http.ResponseWriter, r *http.Request) {
	order := catalog.ParseSortOrder(r.URL.Query().Get("sort"))
	respondJSON(w, http.StatusOK, h.queryHandler.Screen(getSessionID(r), order))
}

type navigateRequest struct {
	View      string `json:"view"`
	Category  string `json:"category"`
	ProductID string `json:"productId"`
}

func (h *Handlers) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cmd := command.Navigate{
		SessionID: getSessionID(r),
		View:      req.View,
		Category:  req.Category,
		ProductID: req.ProductID,
	}
	if _, err := h.cmdHandler.Navigate(cmd); err != nil {
		respondError(w, r, err)
		return
	}

	order := catalog.ParseSortOrder(r.URL.Query().Get("sort"))
	respondJSON(w, http.StatusOK, h.queryHandler.Screen(cmd.SessionID, order))
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.GetCart(getSessionID(r)))
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	cmd := command.AddToCart{
		SessionID: getSessionID(r),
		ProductID: req.ProductID,
		Quantity:  qty,
	}
	if err := h.cmdHandler.AddToCart(r.Context(), cmd); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.queryHandler.GetCart(cmd.SessionID))
}

type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

type cartMutationResponse struct {
	Updated *bool              `json:"updated,omitempty"`
	Removed *bool              `json:"removed,omitempty"`
	Cart    *query.CartSummary `json:"cart"`
}

func (h *Handlers) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req changeQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sessionID := getSessionID(r)
	updated := h.cmdHandler.ChangeQuantity(r.Context(), command.ChangeQuantity{
		SessionID: sessionID,
		ProductID: chi.URLParam(r, "id"),
		Delta:     req.Delta,
	})

	respondJSON(w, http.StatusOK, cartMutationResponse{
		Updated: &updated,
		Cart:    h.queryHandler.GetCart(sessionID),
	})
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r)
	removed := h.cmdHandler.RemoveFromCart(r.Context(), command.RemoveFromCart{
		SessionID: sessionID,
		ProductID: chi.URLParam(r, "id"),
	})

	respondJSON(w, http.StatusOK, cartMutationResponse{
		Removed: &removed,
		Cart:    h.queryHandler.GetCart(sessionID),
	})
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r)
	h.cmdHandler.ClearCart(r.Context(), command.ClearCart{SessionID: sessionID})
	respondJSON(w, http.StatusOK, h.queryHandler.GetCart(sessionID))
}

// Checkout only acknowledges; the cart is left as it is
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusAccepted, map[string]any{
		"message": checkoutMessage,
		"cart":    h.queryHandler.GetCart(getSessionID(r)),
	})
}

// Newsletter Handlers

func (h *Handlers) NewsletterPopup(w http.ResponseWriter, r *http.Request) {
	popup, err := h.newsletter.Check(r.Context(), getSessionID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, popup)
}

func (h *Handlers) DismissPopup(w http.ResponseWriter, r *http.Request) {
	if err := h.newsletter.Dismiss(r.Context(), getSessionID(r)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	added, err := h.newsletter.Subscribe(r.Context(), getSessionID(r), req.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	respondJSON(w, status, map[string]any{"subscribed": true, "new": added})
}

// parseCategoryParam accepts "", "all" or a category name
func parseCategoryParam(s string) (catalog.Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return "", nil
	}
	return catalog.ParseCategory(s)
}
