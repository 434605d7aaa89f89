package catalog

import "time"

const (
	EventProductAdded   = "ProductAdded"
	EventProductUpdated = "ProductUpdated"
	EventProductDeleted = "ProductDeleted"
)

type ProductAdded struct {
	Product Product   `json:"product"`
	AddedAt time.Time `json:"added_at"`
}

type ProductUpdated struct {
	Product   Product   `json:"product"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductDeleted struct {
	ProductID string    `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
