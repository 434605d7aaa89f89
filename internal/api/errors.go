package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/watchhaven/internal/auth"
	"github.com/example/watchhaven/internal/domain/cart"
	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/domain/view"
	"github.com/example/watchhaven/internal/media"
	"github.com/example/watchhaven/internal/newsletter"
	log "github.com/sirupsen/logrus"
)

var badRequestErrors = []error{
	catalog.ErrInvalidName,
	catalog.ErrInvalidBrand,
	catalog.ErrInvalidPrice,
	catalog.ErrInvalidCategory,
	catalog.ErrInvalidDiscount,
	catalog.ErrInvalidRating,
	catalog.ErrInvalidReviews,
	cart.ErrInvalidQuantity,
	cart.ErrInvalidProduct,
	view.ErrUnknownView,
	newsletter.ErrInvalidEmail,
	media.ErrEmptyImage,
	media.ErrNotImage,
	media.ErrInvalidURL,
	media.ErrBlockedHost,
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, media.ErrNoImageFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrBadCredentials):
		return http.StatusUnauthorized
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err with its mapped status. Internal errors are
// logged and hidden from the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", r.URL.Path).Error("[API] internal error")
		respondJSONError(w, "internal error", status)
		return
	}
	respondJSONError(w, err.Error(), status)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondJSONError writes a JSON error response
func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
