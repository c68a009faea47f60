package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/bloggy-api/internal/api/shared"
	"github.com/phrazzld/bloggy-api/internal/service/auth"
)

// AuthHandler handles admin authentication requests.
type AuthHandler struct {
	login auth.LoginService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(login auth.LoginService) *AuthHandler {
	return &AuthHandler{login: login}
}

// Login handles POST /admin/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	token, err := h.login.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				GetSafeErrorMessage(err), err, shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	shared.RespondWithDocument(w, r, http.StatusOK, MetaDocument{
		Meta: LoginMeta{Token: token.Value, ExpiresAt: token.ExpiresAt},
	})
}
