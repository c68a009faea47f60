package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/api/shared"
	"github.com/phrazzld/bloggy-api/internal/domain"
)

// Path prefixes of the public and admin APIs, relative to the origin.
const (
	PublicPrefix = "/api/v1"
	AdminPrefix  = "/api/v1/admin"
)

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// BaseURLFunc returns the absolute base URL documents are linked against.
type BaseURLFunc func(r *http.Request) string

// NewBaseURLFunc returns a BaseURLFunc for the API mounted at prefix. A
// non-empty origin is used as is; otherwise the origin is derived from the
// request's scheme and Host header.
func NewBaseURLFunc(origin, prefix string) BaseURLFunc {
	origin = strings.TrimSuffix(origin, "/")
	return func(r *http.Request) string {
		if origin != "" {
			return origin + prefix
		}
		return requestOrigin(r) + prefix
	}
}

func requestOrigin(r *http.Request) string {
	return shared.RequestScheme(r) + "://" + r.Host
}

// adminSubject returns the authenticated admin's subject, or "" outside the
// admin API.
func adminSubject(r *http.Request) string {
	subject, _ := shared.GetAdminSubject(r.Context())
	return subject
}
