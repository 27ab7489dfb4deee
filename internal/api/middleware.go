package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rentwheels/rentwheels-server/internal/auth"
	"github.com/rentwheels/rentwheels-server/internal/http/response"
	"github.com/rentwheels/rentwheels-server/internal/store"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyClaims contextKey = "claims"

// requireAuth is middleware that validates the session cookie and
// attaches the verified identity claims to the request context. A
// missing cookie is an authentication failure (401); a cookie that is
// present but invalid or expired is an authorization failure (403).
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil || cookie.Value == "" {
			response.Unauthorized(w, "unauthorized access", s.logger.Logger)
			return
		}

		claims, err := s.tokenService.Verify(cookie.Value)
		if err != nil {
			response.Forbidden(w, "forbidden access", s.logger.Logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFrom extracts the verified identity claims from request context.
// Returns nil outside of requireAuth-gated routes.
func claimsFrom(ctx context.Context) *auth.IdentityClaims {
	claims, _ := ctx.Value(contextKeyClaims).(*auth.IdentityClaims)
	return claims
}

// authorizeEmail enforces the ownership policy: a caller may only read
// collections scoped to their own email. Comparison is case-insensitive.
func authorizeEmail(ctx context.Context, email string) error {
	claims := claimsFrom(ctx)
	if claims == nil {
		return store.ErrUnauthenticated.WithMessage("unauthorized access")
	}
	if !strings.EqualFold(claims.Email(), strings.TrimSpace(email)) {
		return store.ErrForbidden.WithMessage("forbidden access")
	}
	return nil
}

// handleAuthzError distinguishes the two gate failures for the client.
func (s *Server) handleAuthzError(w http.ResponseWriter, err error) {
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		response.Error(w, storeErr.HTTPCode(), storeErr.Message, s.logger.Logger)
		return
	}
	response.Forbidden(w, "forbidden access", s.logger.Logger)
}
