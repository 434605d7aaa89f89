package command

import "github.com/example/watchhaven/internal/domain/catalog"

// Product Commands
type AddProduct struct {
	Product catalog.Product `json:"product"`
}

type UpdateProduct struct {
	Product catalog.Product `json:"product"`
}

type DeleteProduct struct {
	ProductID string            `json:"product_id"`
	Confirm   catalog.Confirmer `json:"-"`
}

// Cart Commands
type AddToCart struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type ChangeQuantity struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
}

type RemoveFromCart struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
}

type ClearCart struct {
	SessionID string `json:"session_id"`
}

// View Commands
type Navigate struct {
	SessionID string `json:"session_id"`
	View      string `json:"view"`
	Category  string `json:"category"`
	ProductID string `json:"product_id"`
}
