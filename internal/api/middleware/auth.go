package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/bloggy-api/internal/api/shared"
	"github.com/phrazzld/bloggy-api/internal/service/auth"
)

// AuthMiddleware guards the admin API with bearer tokens.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// records the admin subject in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.Contains(token, " ") {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err,
					shared.WithElevatedLogLevel())
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Authentication error", err)
			}
			return
		}

		ctx := shared.WithAdminSubject(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
