package share

import (
	"net/url"
	"testing"

	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() catalog.Product {
	return catalog.Product{
		ID:     "4",
		Name:   "Royal Oak Skeleton",
		Brand:  "Grand Haven",
		Images: []string{"https://img.example.com/oak.jpg?w=800&q=90"},
	}
}

func TestText(t *testing.T) {
	assert.Equal(t,
		"Check out this masterpiece: Royal Oak Skeleton by Grand Haven at WatchHaven.",
		Text(testProduct()))
}

func TestTargetURL(t *testing.T) {
	p := testProduct()
	assert.Equal(t, "https://shop.example.com/products/4", TargetURL(p, "https://shop.example.com/products/4"))

	p.MarketingLink = " https://campaign.example.com/oak "
	assert.Equal(t, "https://campaign.example.com/oak", TargetURL(p, "https://shop.example.com/products/4"))
}

func TestBuild_EncodesEveryComponent(t *testing.T) {
	page := "https://shop.example.com/products/4?ref=a&b=c"
	links := Build(testProduct(), page)

	tests := []struct {
		name  string
		link  string
		host  string
		param string
		want  string
	}{
		{"whatsapp", links.WhatsApp, "wa.me", "text", Text(testProduct()) + " " + page},
		{"facebook", links.Facebook, "www.facebook.com", "u", page},
		{"x text", links.X, "twitter.com", "text", Text(testProduct())},
		{"x url", links.X, "twitter.com", "url", page},
		{"pinterest url", links.Pinterest, "pinterest.com", "url", page},
		{"pinterest media", links.Pinterest, "pinterest.com", "media", "https://img.example.com/oak.jpg?w=800&q=90"},
		{"pinterest description", links.Pinterest, "pinterest.com", "description", Text(testProduct())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.host, u.Host)
			assert.Equal(t, tt.want, u.Query().Get(tt.param))
		})
	}

	assert.Equal(t, page, links.Copy)
	assert.Equal(t, page, links.URL)
}

func TestBuild_SpacesEncodedAsPercent20(t *testing.T) {
	links := Build(testProduct(), "https://shop.example.com/products/4")

	assert.Contains(t, links.X, "text=Check%20out%20this%20masterpiece%3A%20Royal%20Oak%20Skeleton")
	assert.Contains(t, links.WhatsApp, "WatchHaven.%20https%3A%2F%2Fshop.example.com")
	for _, link := range []string{links.WhatsApp, links.X, links.Pinterest} {
		assert.NotContains(t, link, "+")
	}
}

func TestEncodeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"it's (new)!*", "it's%20(new)!*"},
		{"50% & more", "50%25%20%26%20more"},
		{"-_.~", "-_.~"},
		{"ü", "%C3%BC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, encodeComponent(tt.in), tt.in)
	}
}

func TestBuild_NoImage(t *testing.T) {
	p := testProduct()
	p.Images = nil

	u, err := url.Parse(Build(p, "https://x.test/p").Pinterest)

	require.NoError(t, err)
	assert.Equal(t, "", u.Query().Get("media"))
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/products/a%20b", PageURL("http://localhost:8080/", "a b"))
}
