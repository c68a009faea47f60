package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloggy-api/internal/domain"
	"github.com/phrazzld/bloggy-api/internal/redact"
	"github.com/phrazzld/bloggy-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to status codes.
var (
	// ErrNilDependency is returned by constructors when a required
	// collaborator is missing.
	ErrNilDependency = errors.New("required dependency is nil")
)

// ServiceError records the service and operation that failed. It unwraps to
// the underlying error so store and domain sentinels stay visible to
// errors.Is.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with the service and operation names.
func NewServiceError(service, op string, err error) error {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}

func nilDependency(service, name string) error {
	return NewServiceError(service, "init", fmt.Errorf("%w: %s", ErrNilDependency, name))
}

// isExpected reports whether err is a client-caused failure that does not
// warrant an error-level log entry.
func isExpected(err error) bool {
	return store.IsNotFoundError(err) ||
		store.IsDuplicateError(err) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, domain.ErrValidation)
}

func logFailure(log *slog.Logger, op string, err error) {
	if isExpected(err) {
		log.Debug("operation rejected",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return
	}
	log.Error("operation failed",
		slog.String("operation", op),
		slog.String("error", redact.Error(err)))
}
