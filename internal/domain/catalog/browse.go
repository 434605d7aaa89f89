package catalog

import (
	"sort"
	"strings"
)

// SortOrder is a category-screen ordering
type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
)

const (
	FeaturedCount = 4
	RelatedCount  = 4
)

// ParseSortOrder defaults to featured for empty or unknown input
func ParseSortOrder(s string) SortOrder {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortNewest, SortPriceLow, SortPriceHigh:
		return o
	default:
		return SortFeatured
	}
}

// FilterByCategory keeps products of the given category; the empty category keeps all
func FilterByCategory(products []Product, c Category) []Product {
	if c == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders products in place. Featured keeps catalog order; newest puts
// new arrivals first; the price orders are stable.
func Sort(products []Product, order SortOrder) {
	switch order {
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].IsNew && !products[j].IsNew
		})
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	}
}

// Featured returns the head of the catalog shown on the home screen
func Featured(products []Product) []Product {
	if len(products) > FeaturedCount {
		return products[:FeaturedCount]
	}
	return products
}

// Related returns up to RelatedCount products of the same category, excluding p
func Related(products []Product, p Product) []Product {
	out := make([]Product, 0, RelatedCount)
	for _, candidate := range products {
		if candidate.Category != p.Category || candidate.ID == p.ID {
			continue
		}
		out = append(out, candidate)
		if len(out) == RelatedCount {
			break
		}
	}
	return out
}
