package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/example/watchhaven/internal/config"
	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// imageSelectors are tried in order on an HTML page
var imageSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:image"]`, "content"},
	{`meta[property="og:image:url"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
	{`link[rel="image_src"]`, "href"},
}

// Resolver follows a pasted link to the image it stands for
type Resolver struct {
	httpClient *resty.Client
	maxBytes   int64
	guarded    bool
}

// NewResolver only reaches public hosts; loopback, private and link-local
// targets are refused before and during the dial.
func NewResolver(cfg config.MediaConfig) *Resolver {
	client := resty.NewWithClient(&http.Client{Transport: guardedTransport()}).
		SetTimeout(cfg.FetchTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("User-Agent", "WatchHaven-ImageResolver/1.0").
		SetHeader("Accept", "image/*,text/html;q=0.9,*/*;q=0.5")
	r := NewResolverWithClient(client, cfg.MaxImageBytes)
	r.guarded = true
	return r
}

// NewResolverWithClient trusts the transport of client and applies no
// host checks. Responses are capped at maxBytes while reading.
func NewResolverWithClient(client *resty.Client, maxBytes int64) *Resolver {
	if maxBytes > 0 {
		client.SetResponseBodyLimit(maxBytes)
	}
	return &Resolver{httpClient: client, maxBytes: maxBytes}
}

func (r *Resolver) Close() error {
	return r.httpClient.Close()
}

// Resolve returns an image URI for rawURL. Data URIs and links that already
// name an image file come back unchanged unless inline is set. HTML pages
// are searched for an og:image. With inline the image is fetched and
// returned as a data URI.
func (r *Resolver) Resolve(ctx context.Context, rawURL string, inline bool) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if IsDataURI(rawURL) {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}
	if !inline && hasImageExtension(u.Path) {
		return rawURL, nil
	}

	body, contentType, err := r.fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if IsImageType(contentType) {
		if inline {
			return EncodeDataURI(contentType, body)
		}
		return rawURL, nil
	}

	if mediaType(contentType) != "text/html" {
		return "", ErrNoImageFound
	}

	imageURL, err := extractImage(body, u)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"page": rawURL, "image": imageURL}).Debug("[Media] Resolved page image")

	if !inline {
		return imageURL, nil
	}
	img, imgType, err := r.fetch(ctx, imageURL)
	if err != nil {
		return "", err
	}
	return EncodeDataURI(imgType, img)
}

func (r *Resolver) fetch(ctx context.Context, target string) ([]byte, string, error) {
	if r.guarded {
		u, err := url.Parse(target)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
			return nil, "", ErrInvalidURL
		}
		if err := checkHost(ctx, u.Hostname()); err != nil {
			return nil, "", err
		}
	}

	resp, err := r.httpClient.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		if errors.Is(err, resty.ErrReadExceedsThresholdLimit) {
			return nil, "", ErrTooLarge
		}
		if ctx.Err() != nil {
			return nil, "", fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, "", fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	body := []byte(resp.String())
	if r.maxBytes > 0 && int64(len(body)) > r.maxBytes {
		return nil, "", ErrTooLarge
	}
	return body, resp.Header().Get("Content-Type"), nil
}

func extractImage(html []byte, page *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, sel := range imageSelectors {
		val, ok := doc.Find(sel.selector).First().Attr(sel.attr)
		if !ok || strings.TrimSpace(val) == "" {
			continue
		}
		ref, err := url.Parse(strings.TrimSpace(val))
		if err != nil {
			continue
		}
		return page.ResolveReference(ref).String(), nil
	}
	return "", ErrNoImageFound
}
