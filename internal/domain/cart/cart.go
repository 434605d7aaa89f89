package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/infrastructure/eventbus"
	log "github.com/sirupsen/logrus"
)

const AggregateType = "Cart"

const (
	MinQuantity = 1
	MaxQuantity = 10

	FreeShippingThreshold = 500.0
	FlatShippingFee       = 25.0
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidProduct  = errors.New("product id is required")
)

// Item is a snapshot of a product taken when it was first added, plus the
// desired quantity. Later catalog edits do not reach items already here.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity
func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart holds one visitor's line items in insertion order
type Cart struct {
	mu      sync.Mutex
	id      string
	items   []Item
	emitter eventbus.Emitter
}

func New(id string, emitter eventbus.Emitter) *Cart {
	return &Cart{id: id, emitter: emitter}
}

// GetCartID returns the cart ID for a session
func GetCartID(sessionID string) string {
	return "cart-" + sessionID
}

func (c *Cart) ID() string {
	return c.id
}

// Add merges into an existing line or appends a new snapshot. Quantities
// are capped at MaxQuantity; non-positive quantities are rejected.
func (c *Cart) Add(ctx context.Context, p catalog.Product, quantity int) error {
	if p.ID == "" {
		return ErrInvalidProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	quantity = min(quantity, MaxQuantity)

	c.mu.Lock()
	var qty int
	price := p.Price
	if i := c.indexOf(p.ID); i >= 0 {
		qty = min(MaxQuantity, c.items[i].Quantity+quantity)
		c.items[i].Quantity = qty
		price = c.items[i].Price
	} else {
		qty = quantity
		c.items = append(c.items, Item{Product: p.Clone(), Quantity: qty})
	}
	c.mu.Unlock()

	c.emit(ctx, EventItemAdded, ItemAddedToCart{
		CartID:    c.id,
		ProductID: p.ID,
		Quantity:  qty,
		Price:     price,
		AddedAt:   time.Now(),
	})
	return nil
}

// UpdateQuantity applies delta and clamps the result into [MinQuantity, MaxQuantity].
// Reports false when no line matches id.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, delta int) bool {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	delta = clamp(delta, -MaxQuantity, MaxQuantity)
	qty := clamp(c.items[i].Quantity+delta, MinQuantity, MaxQuantity)
	c.items[i].Quantity = qty
	c.mu.Unlock()

	c.emit(ctx, EventQuantityChanged, ItemQuantityChanged{
		CartID:    c.id,
		ProductID: id,
		Quantity:  qty,
		ChangedAt: time.Now(),
	})
	return true
}

// Remove deletes the line for id. Removing an absent id is a no-op.
func (c *Cart) Remove(ctx context.Context, id string) bool {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	c.mu.Unlock()

	c.emit(ctx, EventItemRemoved, ItemRemovedFromCart{
		CartID:    c.id,
		ProductID: id,
		RemovedAt: time.Now(),
	})
	return true
}

// Clear empties the cart
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()

	c.emit(ctx, EventCartCleared, CartCleared{CartID: c.id, ClearedAt: time.Now()})
}

// Items returns copies of the lines in insertion order
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	for i, item := range c.items {
		out[i] = Item{Product: item.Product.Clone(), Quantity: item.Quantity}
	}
	return out
}

// Subtotal is the sum of price * quantity over all lines
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return subtotal(c.items)
}

// ShippingCost is free above FreeShippingThreshold, otherwise a flat fee
func (c *Cart) ShippingCost() float64 {
	return ShippingFor(c.Subtotal())
}

func (c *Cart) Total() float64 {
	s := c.Subtotal()
	return s + ShippingFor(s)
}

// Count is the badge count: the sum of all quantities
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// ShippingFor applies the shipping rule to a subtotal
func ShippingFor(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

func subtotal(items []Item) float64 {
	var sum float64
	for _, item := range items {
		sum += item.LineTotal()
	}
	return sum
}

// indexOf must be called with the lock held
func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func (c *Cart) emit(ctx context.Context, eventType string, data any) {
	if c.emitter == nil {
		return
	}
	if _, err := c.emitter.Emit(ctx, c.id, AggregateType, eventType, data); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"cart_id":    c.id,
			"event_type": eventType,
		}).Warn("[Cart] Failed to publish event")
	}
}
