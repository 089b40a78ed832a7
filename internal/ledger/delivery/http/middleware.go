package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/pkg/auth"
	"github.com/tair/inventory-ledger/pkg/logger"
)

type contextKey string

// PrincipalKey carries the resolved principal through the request context.
const PrincipalKey contextKey = "principal"

// AuthMiddleware verifies the bearer token and resolves the claim set into
// a Principal. The claim set is untrusted input until pkg/auth verified it;
// from here on the principal is an immutable value.
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Invalid token")
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		principal, err := authz.Resolve(claims)
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Malformed claim set")
			respondError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func principalFrom(r *http.Request) authz.Principal {
	p, _ := r.Context().Value(PrincipalKey).(authz.Principal)
	return p
}
