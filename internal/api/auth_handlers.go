package api

import (
	"net/http"
	"time"

	"github.com/example/watchhaven/internal/api/middleware"
	"github.com/example/watchhaven/internal/auth"
	log "github.com/sirupsen/logrus"
)

// AuthHandlers handles admin login
type AuthHandlers struct {
	authenticator *auth.Authenticator
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(authenticator *auth.Authenticator) *AuthHandlers {
	return &AuthHandlers{authenticator: authenticator}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the token for API clients; browsers get the cookie
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles admin login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, expiresAt, err := h.authenticator.Login(req.Password)
	if err != nil {
		log.WithField("remote_addr", r.RemoteAddr).Warn("[Auth] Failed admin login")
		respondJSONError(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Logout clears the admin cookie
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
