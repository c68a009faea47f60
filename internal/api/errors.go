package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/bloggy-api/internal/api/shared"
	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/service/auth"
	"github.com/phrazzld/bloggy-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Payload type or id disagrees with the endpoint
	case errors.Is(err, domain.ErrTypeMismatch):
		return http.StatusConflict

	// Constraint violations
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	// Not found errors
	case errors.Is(err, store.ErrPostNotFound):
		return "Post not found"

	case errors.Is(err, store.ErrCommentNotFound):
		return "Comment not found"

	case errors.Is(err, store.ErrTagNotFound):
		return "Tag not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Constraint violations
	case errors.Is(err, store.ErrSlugExists):
		return "Slug has already been taken"

	case errors.Is(err, store.ErrTagSlugExists):
		return "Tag slug has already been taken for this post"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, domain.ErrTypeMismatch):
		return "Resource type or id does not match the endpoint"

	// Bad request errors
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid resource id"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fieldPath(fe), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// ValidationPointer returns the JSON pointer of the first failing field,
// e.g. /data/attributes/title, or "" when err is not a validator error.
func ValidationPointer(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return "/" + strings.ReplaceAll(fieldPath(validationErrs[0]), ".", "/")
	}
	return ""
}

// fieldPath renders a validator namespace such as
// "CreatePostRequest.Data.Attributes.Slug" as "data.attributes.slug".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "url":
		return "invalid url"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error document for err. fallback replaces the
// generic message of internal errors; known error kinds keep their safe
// message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
