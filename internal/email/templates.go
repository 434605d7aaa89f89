package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/example/watchhaven/internal/domain/catalog"
)

// BuildNewArrivalBody builds the HTML body for the new-arrival email
func BuildNewArrivalBody(p catalog.Product) string {
	var specsHTML strings.Builder
	for _, spec := range p.Specs {
		specsHTML.WriteString(fmt.Sprintf(
			`<li style="padding: 4px 0;">%s</li>`, html.EscapeString(spec)))
	}

	imageHTML := ""
	if img := p.PrimaryImage(); img != "" && !strings.HasPrefix(img, "data:") {
		imageHTML = fmt.Sprintf(
			`<img src="%s" alt="%s" style="width: 100%%; border-radius: 5px; margin-bottom: 20px;">`,
			html.EscapeString(img), html.EscapeString(p.Name))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Georgia, 'Times New Roman', serif; line-height: 1.6; color: #222; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #111; padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: #d4af37; margin: 0; font-size: 24px;">A new timepiece has arrived</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		%s
		<p style="margin: 0; font-size: 14px; color: #666;">%s &middot; %s</p>
		<h2 style="font-size: 22px; margin: 5px 0 15px 0;">%s</h2>
		<p>%s</p>

		<ul style="padding-left: 20px; color: #444;">
			%s
		</ul>

		<div style="text-align: right; padding: 20px; background: #f8f9fa; border-radius: 5px;">
			<span style="font-size: 24px; font-weight: bold; color: #111;">%s</span>
		</div>

		<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			You are receiving this because you subscribed to the WatchHaven newsletter.
		</p>
	</div>
</body>
</html>`,
		imageHTML,
		html.EscapeString(p.Brand),
		html.EscapeString(string(p.Category)),
		html.EscapeString(p.Name),
		html.EscapeString(p.Description),
		specsHTML.String(),
		formatPrice(p.Price),
	)
}

// formatPrice renders a price as $1,250.00
func formatPrice(price float64) string {
	cents := int64(price*100 + 0.5)
	return fmt.Sprintf("$%s.%02d", formatNumber(cents/100), cents%100)
}

// formatNumber formats a number with comma separators
func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	remainder := len(str) % 3
	if remainder > 0 {
		result.WriteString(str[:remainder])
		if len(str) > remainder {
			result.WriteString(",")
		}
	}

	for i := remainder; i < len(str); i += 3 {
		result.WriteString(str[i : i+3])
		if i+3 < len(str) {
			result.WriteString(",")
		}
	}

	return result.String()
}
