// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenHeader carries the session token of the six-cities API.
const TokenHeader = "X-Token"

// SessionLookup resolves a token to the email of its session.
type SessionLookup func(token string) (email string, ok bool)

// TokenAuth resolves the X-Token header through lookup and, when the
// session exists, stores its email in the request context. Anonymous
// requests pass through; use RequireUser on protected routes.
func TokenAuth(lookup SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			if email, ok := lookup(token); ok {
				ctx := context.WithValue(r.Context(), userKey, email)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects requests without an authenticated user with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == "" {
			http.Error(w, "Access denied", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the email stored by TokenAuth, or "".
func GetUserFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
