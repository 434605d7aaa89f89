package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortFeatured, ParseSortOrder(""))
	assert.Equal(t, SortFeatured, ParseSortOrder("random"))
	assert.Equal(t, SortNewest, ParseSortOrder("newest"))
	assert.Equal(t, SortPriceLow, ParseSortOrder("Price-Low"))
	assert.Equal(t, SortPriceHigh, ParseSortOrder("price-high"))
}

func TestFilterByCategory(t *testing.T) {
	products := []Product{testProduct("1", Men, 1), testProduct("2", Women, 2), testProduct("3", Men, 3)}

	assert.Equal(t, []string{"1", "3"}, ids(FilterByCategory(products, Men)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterByCategory(products, "")))
	assert.Empty(t, FilterByCategory(products, Luxury))
}

func TestSort(t *testing.T) {
	newer := testProduct("b", Men, 300)
	newer.IsNew = true
	base := []Product{testProduct("a", Men, 500), newer, testProduct("c", Men, 100)}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortFeatured, []string{"a", "b", "c"}},
		{SortNewest, []string{"b", "a", "c"}},
		{SortPriceLow, []string{"c", "b", "a"}},
		{SortPriceHigh, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			products := append([]Product(nil), base...)
			Sort(products, tt.order)
			assert.Equal(t, tt.want, ids(products))
		})
	}
}

func TestFeatured(t *testing.T) {
	products := []Product{
		testProduct("1", Men, 1), testProduct("2", Men, 1), testProduct("3", Men, 1),
		testProduct("4", Men, 1), testProduct("5", Men, 1),
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Featured(products)))
	assert.Equal(t, []string{"1"}, ids(Featured(products[:1])))
}

func TestRelated(t *testing.T) {
	products := []Product{
		testProduct("1", Men, 1), testProduct("2", Women, 1), testProduct("3", Men, 1),
		testProduct("4", Men, 1), testProduct("5", Men, 1), testProduct("6", Men, 1),
		testProduct("7", Men, 1),
	}

	related := Related(products, products[0])

	require.Len(t, related, RelatedCount)
	assert.Equal(t, []string{"3", "4", "5", "6"}, ids(related))
	assert.Empty(t, Related(products, products[1]))
}

func TestLoadSeed(t *testing.T) {
	products, err := LoadSeed()

	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.Equal(t, "Heritage Chronograph Blue", products[0].Name)
	assert.Equal(t, Men, products[0].Category)
	assert.True(t, products[0].IsBestSeller)
	assert.Len(t, products[0].Images, 2)
	assert.Equal(t, 15.0, products[2].Discount)
	assert.Equal(t, Accessories, products[5].Category)
}

func TestParseSeed_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "products: [:"},
		{"missing id", "products:\n  - name: X\n    brand: Y\n    category: Men\n"},
		{"duplicate id", "products:\n  - {id: '1', name: X, brand: Y, category: Men}\n  - {id: '1', name: Z, brand: Y, category: Men}\n"},
		{"invalid category", "products:\n  - {id: '1', name: X, brand: Y, category: Kids}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
