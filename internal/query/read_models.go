package query

import (
	"github.com/example/watchhaven/internal/domain/cart"
	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/domain/view"
)

// ProductList is the category screen: the filtered, sorted products and how many there are
type ProductList struct {
	Category catalog.Category  `json:"category,omitempty"`
	Sort     catalog.SortOrder `json:"sort"`
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

// ProductDetail is one product plus others from its collection
type ProductDetail struct {
	Product catalog.Product   `json:"product"`
	Related []catalog.Product `json:"related"`
}

type CartLine struct {
	cart.Item
	LineTotal float64 `json:"lineTotal"`
}

type CartSummary struct {
	ID                    string     `json:"id"`
	Items                 []CartLine `json:"items"`
	Count                 int        `json:"count"`
	Subtotal              float64    `json:"subtotal"`
	Shipping              float64    `json:"shipping"`
	Total                 float64    `json:"total"`
	FreeShippingRemaining float64    `json:"freeShippingRemaining"`
}

// Screen is the slice of state the active view renders. Only the fields
// for State.Current are set.
type Screen struct {
	State      view.State         `json:"state"`
	Featured   []catalog.Product  `json:"featured,omitempty"`
	Categories []catalog.Category `json:"categories,omitempty"`
	List       *ProductList       `json:"list,omitempty"`
	Detail     *ProductDetail     `json:"detail,omitempty"`
	Cart       *CartSummary       `json:"cart,omitempty"`
	Products   []catalog.Product  `json:"products,omitempty"`
}
