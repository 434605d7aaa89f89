// Package share builds outbound share links for a product.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/example/watchhaven/internal/domain/catalog"
)

// Links holds one URL per share target. Copy is the raw link for the clipboard.
type Links struct {
	Text      string `json:"text"`
	URL       string `json:"url"`
	WhatsApp  string `json:"whatsapp"`
	Facebook  string `json:"facebook"`
	X         string `json:"x"`
	Pinterest string `json:"pinterest"`
	Copy      string `json:"copy"`
}

// Text is the message shared alongside the link
func Text(p catalog.Product) string {
	return fmt.Sprintf("Check out this masterpiece: %s by %s at WatchHaven.", p.Name, p.Brand)
}

// TargetURL prefers the product's marketing link over the page URL
func TargetURL(p catalog.Product, pageURL string) string {
	if link := strings.TrimSpace(p.MarketingLink); link != "" {
		return link
	}
	return pageURL
}

// Build returns the share links for p
func Build(p catalog.Product, pageURL string) Links {
	text := Text(p)
	target := TargetURL(p, pageURL)

	return Links{
		Text:     text,
		URL:      target,
		WhatsApp: "https://wa.me/?text=" + encodeComponent(text+" "+target),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + encodeComponent(target),
		X: "https://twitter.com/intent/tweet?text=" + encodeComponent(text) +
			"&url=" + encodeComponent(target),
		Pinterest: "https://pinterest.com/pin/create/button/?url=" + encodeComponent(target) +
			"&media=" + encodeComponent(p.PrimaryImage()) +
			"&description=" + encodeComponent(text),
		Copy: target,
	}
}

// PageURL is the storefront link for a product under baseURL
func PageURL(baseURL, productID string) string {
	return strings.TrimRight(baseURL, "/") + "/products/" + url.PathEscape(productID)
}

// componentUnescapes are left literal by encodeURIComponent but escaped by
// url.QueryEscape.
var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s for a query value the way browsers'
// encodeURIComponent does, so spaces become %20.
func encodeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
