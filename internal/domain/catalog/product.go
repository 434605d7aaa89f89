package catalog

import (
	"errors"
	"strings"
)

const AggregateType = "Product"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidName     = errors.New("name is required")
	ErrInvalidBrand    = errors.New("brand is required")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
	ErrInvalidRating   = errors.New("rating must be between 0 and 5")
	ErrInvalidReviews  = errors.New("reviews count must not be negative")
)

// Category is one of the fixed storefront collections
type Category string

const (
	Men         Category = "Men"
	Women       Category = "Women"
	Smart       Category = "Smart"
	Luxury      Category = "Luxury"
	Sports      Category = "Sports"
	Accessories Category = "Accessories"
)

var categories = []Category{Men, Women, Smart, Luxury, Sports, Accessories}

// Categories returns the collections in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches a category name case-insensitively
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry
type Product struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Brand         string   `json:"brand" yaml:"brand"`
	Price         float64  `json:"price" yaml:"price"`
	Category      Category `json:"category" yaml:"category"`
	Description   string   `json:"description" yaml:"description"`
	Specs         []string `json:"specs" yaml:"specs"`
	Images        []string `json:"images" yaml:"images"`
	Rating        float64  `json:"rating" yaml:"rating"`
	ReviewsCount  int      `json:"reviewsCount" yaml:"reviewsCount"`
	IsNew         bool     `json:"isNew,omitempty" yaml:"isNew"`
	IsBestSeller  bool     `json:"isBestSeller,omitempty" yaml:"isBestSeller"`
	Discount      float64  `json:"discount,omitempty" yaml:"discount"`
	MarketingLink string   `json:"marketingLink,omitempty" yaml:"marketingLink"`
}

// PrimaryImage returns the first image or ""
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Clone returns a deep copy so callers never share slices with the store
func (p Product) Clone() Product {
	c := p
	if p.Specs != nil {
		c.Specs = append([]string(nil), p.Specs...)
	}
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	return c
}

// Validate checks the fields an admin form must supply
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(p.Brand) == "" {
		return ErrInvalidBrand
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if !p.Category.Valid() {
		return ErrInvalidCategory
	}
	if p.Discount < 0 || p.Discount > 100 {
		return ErrInvalidDiscount
	}
	if p.Rating < 0 || p.Rating > 5 {
		return ErrInvalidRating
	}
	if p.ReviewsCount < 0 {
		return ErrInvalidReviews
	}
	return nil
}

// Normalize applies the admin form defaults: rating 5 when unset, trimmed
// text, empty specs and images dropped.
func (p Product) Normalize() Product {
	n := p.Clone()
	n.Name = strings.TrimSpace(n.Name)
	n.Brand = strings.TrimSpace(n.Brand)
	n.MarketingLink = strings.TrimSpace(n.MarketingLink)
	if n.Rating == 0 {
		n.Rating = 5
	}
	if c, err := ParseCategory(string(n.Category)); err == nil {
		n.Category = c
	}

	specs := make([]string, 0, len(n.Specs))
	for _, s := range n.Specs {
		if s = strings.TrimSpace(s); s != "" {
			specs = append(specs, s)
		}
	}
	n.Specs = specs

	images := make([]string, 0, len(n.Images))
	for _, img := range n.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	n.Images = images
	return n
}
