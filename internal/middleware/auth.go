package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adoptme/adoptme-go/internal/crypto"
	"github.com/adoptme/adoptme-go/internal/service"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

// Auth returns middleware that verifies a protected session token and
// attaches its claims to the request context. The token is read from the
// protected session cookie, falling back to an Authorization bearer header.
func Auth(tokens *crypto.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "not authorized")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user's claims from the request
// context.
func UserFromContext(ctx context.Context) (*crypto.UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*crypto.UserClaims)
	return claims, ok
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(service.ProtectedCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return ""
	}
	return token
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": msg})
}
