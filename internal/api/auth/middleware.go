package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vitorsz/shop-users-api/internal/db"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// AuthMiddleware extracts the token from the Authorization header
// (Bearer <token>), verifies it and injects the claims into the
// request context. Any failure rejects the request before the
// downstream handler runs.
func AuthMiddleware(s *AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, MsgResponse{Msg: "missing authorization header"})
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeJSON(w, http.StatusUnauthorized, MsgResponse{Msg: "invalid authorization header"})
				return
			}

			claims, err := s.ParseJWT(parts[1])
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, MsgResponse{Msg: "invalid token"})
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext extracts verified claims from the request context.
func GetClaimsFromContext(r *http.Request) (*db.Claims, error) {
	claims, ok := r.Context().Value(ClaimsContextKey).(*db.Claims)
	if !ok {
		return nil, errors.New("no claims found in context")
	}
	return claims, nil
}
