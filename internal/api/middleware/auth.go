package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/cart-store/internal/auth"
)

// SessionCookie is the cookie a browser UI may carry the session token in
const SessionCookie = "session_token"

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ExtractToken extracts the session token from the Authorization header or cookie
func ExtractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// SessionMiddleware rejects requests without a valid session token and
// adds the session claims to the context
func SessionMiddleware(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ExtractToken(r)
			if tokenString == "" {
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateSessionToken(tokenString)
			if err != nil {
				respondError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionFromContext retrieves session claims from the request context
func GetSessionFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(SessionContextKey).(*auth.Claims)
	return claims, ok
}

// GetSessionID is a helper to get just the session ID from context
func GetSessionID(ctx context.Context) string {
	claims, ok := GetSessionFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.SessionID
}
