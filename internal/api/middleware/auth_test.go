package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/bloggy-api/internal/api/shared"
	"github.com/phrazzld/bloggy-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		expectedStatus int
		expectedDetail string
	}{
		{"valid token", "Bearer valid-token", nil, http.StatusOK, ""},
		{"lowercase scheme", "bearer valid-token", nil, http.StatusOK, ""},
		{"missing auth header", "", nil, http.StatusUnauthorized, "Authorization header required"},
		{"invalid auth format", "InvalidFormat", nil, http.StatusUnauthorized, "Invalid authorization format"},
		{"basic scheme", "Basic dXNlcjpwYXNz", nil, http.StatusUnauthorized, "Invalid authorization format"},
		{"extra parts", "Bearer a b", nil, http.StatusUnauthorized, "Invalid authorization format"},
		{"expired token", "Bearer expired", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"invalid token", "Bearer invalid", auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"wrong token type", "Bearer other", auth.ErrWrongTokenType, http.StatusUnauthorized, "Invalid token"},
		{"unexpected failure", "Bearer x", errors.New("key store down"), http.StatusInternalServerError, "Authentication error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := auth.NewMockJWTService()
			jwtService.ValidationError = tt.validateErr
			var gotToken string
			jwtService.ValidateTokenFunc = func(ctx context.Context, token string) (*auth.Claims, error) {
				gotToken = token
				if tt.validateErr != nil {
					return nil, tt.validateErr
				}
				return jwtService.Claims, nil
			}

			var subject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject, _ = shared.GetAdminSubject(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/posts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "admin", subject)
				assert.Equal(t, "valid-token", gotToken)
				return
			}
			assert.Empty(t, subject)
			assert.Contains(t, rr.Body.String(), tt.expectedDetail)
			if tt.validateErr != nil {
				assert.NotContains(t, rr.Body.String(), tt.validateErr.Error())
			}
		})
	}
}
