// Package media turns uploaded files and pasted links into product image URIs.
package media

import (
	"encoding/base64"
	"errors"
	"net/http"
	"path"
	"strings"
)

var (
	ErrEmptyImage   = errors.New("image is empty")
	ErrNotImage     = errors.New("content is not an image")
	ErrTooLarge     = errors.New("image exceeds size limit")
	ErrInvalidURL   = errors.New("image url must be http or https")
	ErrNoImageFound = errors.New("no image found at url")
	ErrBlockedHost  = errors.New("image host is not publicly routable")
)

// EncodeDataURI embeds raw image bytes as a base64 data URI. An empty
// contentType is sniffed from the data.
func EncodeDataURI(contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	contentType = mediaType(contentType)
	if !IsImageType(contentType) {
		return "", ErrNotImage
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataURI reports whether s already carries inline image data
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}

func IsImageType(contentType string) bool {
	return strings.HasPrefix(mediaType(contentType), "image/")
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".avif": true, ".svg": true,
}

func hasImageExtension(p string) bool {
	return imageExtensions[strings.ToLower(path.Ext(p))]
}

// mediaType drops parameters such as charset
func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
