package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	ddjsonapi "github.com/DataDog/jsonapi"
	"github.com/phrazzld/bloggy-api/internal/jsonapi"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
	"github.com/phrazzld/bloggy-api/internal/redact"
)

// ErrorResponse is the JSON:API error document returned for every failure.
type ErrorResponse struct {
	Errors []*ddjsonapi.Error `json:"errors"`
	Meta   map[string]any     `json:"meta,omitempty"`
}

// NewErrorResponse builds an error document for status with the given
// client-safe detail message and the trace ID, when known. A non-empty
// pointer names the offending request member, e.g. /data/attributes/slug.
func NewErrorResponse(status int, detail, traceID, pointer string) ErrorResponse {
	errObj := &ddjsonapi.Error{
		Status: &status,
		Title:  http.StatusText(status),
		Detail: detail,
	}
	if pointer != "" {
		errObj.Source = &ddjsonapi.ErrorSource{Pointer: pointer}
	}

	resp := ErrorResponse{Errors: []*ddjsonapi.Error{errObj}}
	if traceID != "" {
		resp.Meta = map[string]any{"trace_id": traceID}
	}
	return resp
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
	sourcePointer   string
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for repeated auth failures and
// similar operational signals.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// WithSourcePointer returns a ResponseOption that sets source.pointer on
// the error object.
func WithSourcePointer(pointer string) ResponseOption {
	return func(opts *responseOptions) {
		opts.sourcePointer = pointer
	}
}

// RespondWithDocument writes a JSON:API document with the given status code.
func RespondWithDocument(w http.ResponseWriter, r *http.Request, status int, doc interface{}) {
	w.Header().Set("Content-Type", jsonapi.MediaType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithError writes an error document with the given status code and
// message, tagged with the request's trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	logger.FromContext(r.Context()).Debug("sending error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithDocument(w, r, status, NewErrorResponse(status, message, traceID, ""))
}

// RespondWithErrorAndLog writes an error document carrying only userMessage
// and logs the redacted err.
//
// 5xx responses are logged at ERROR, 429 and elevated 4xx at WARN and
// everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithDocument(w, r, status, NewErrorResponse(status, userMessage, traceID, responseOpts.sourcePointer))
}
