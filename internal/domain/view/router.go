package view

import (
	"errors"
	"strings"
	"sync"

	"github.com/example/watchhaven/internal/domain/catalog"
)

var ErrUnknownView = errors.New("unknown view")

// View is the top-level screen a visitor is looking at
type View string

const (
	Home     View = "home"
	Category View = "category"
	Product  View = "product"
	Cart     View = "cart"
	Admin    View = "admin"
	// Checkout is declared for parity with the storefront client; no
	// navigation ever selects it.
	Checkout View = "checkout"
)

// ParseView accepts the navigable views
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case Home, Category, Product, Cart, Admin:
		return v, nil
	default:
		return "", ErrUnknownView
	}
}

// State is the current selector plus the view-scoped selections
type State struct {
	Current           View             `json:"view"`
	SelectedCategory  catalog.Category `json:"selectedCategory,omitempty"`
	SelectedProductID string           `json:"selectedProductId,omitempty"`
}

// Router holds one visitor's view state. Every navigation is a plain
// assignment and never fails.
type Router struct {
	mu    sync.Mutex
	state State
}

func NewRouter() *Router {
	return &Router{state: State{Current: Home}}
}

func (r *Router) Home() {
	r.set(func(s *State) { s.Current = Home })
}

// Category selects a collection; the empty category means all collections
func (r *Router) Category(c catalog.Category) {
	r.set(func(s *State) {
		s.SelectedCategory = c
		s.Current = Category
	})
}

func (r *Router) Product(id string) {
	r.set(func(s *State) {
		s.SelectedProductID = id
		s.Current = Product
	})
}

func (r *Router) Cart() {
	r.set(func(s *State) { s.Current = Cart })
}

func (r *Router) Admin() {
	r.set(func(s *State) { s.Current = Admin })
}

func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Resolve returns the effective state. A product view whose selection is
// empty or no longer exists falls back to home.
func (r *Router) Resolve(exists func(id string) bool) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Current == Product && (r.state.SelectedProductID == "" || !exists(r.state.SelectedProductID)) {
		r.state.Current = Home
		r.state.SelectedProductID = ""
	}
	return r.state
}

func (r *Router) set(fn func(*State)) {
	r.mu.Lock()
	fn(&r.state)
	r.mu.Unlock()
}
