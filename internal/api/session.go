package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/example/watchhaven/internal/session"
)

const (
	SessionCookieName = "session_id"
	SessionHeader     = "X-Session-ID"

	sessionCookieMaxAge = 30 * 24 * time.Hour
)

type sessionKey struct{}

// withSession resolves the visitor id from the cookie or header and issues
// a fresh one when neither is present
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestSessionID(r)
		if id == "" {
			id = session.NewID()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(sessionCookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(SessionHeader, id)

		ctx := context.WithValue(r.Context(), sessionKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestSessionID(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return strings.TrimSpace(r.Header.Get(SessionHeader))
}

// getSessionID returns the id withSession stored on the request
func getSessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}
