package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/service"
)

// ErrorDetail is the machine-readable code and human-readable message of a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
// Conflicts is only present on 409 responses caused by overlapping trips.
type ErrorResponse struct {
	Error     ErrorDetail          `json:"error"`
	Conflicts []OverlapFindingJSON `json:"conflicts,omitempty"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return errorBody("not_found", message)
}

// validationBody returns an ErrorResponse for a domain validation failure.
func validationBody(err error) ErrorResponse {
	return errorBody("validation_error", unwrapMessage(err))
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return errorBody("validation_error", message)
}

// writeServiceError maps a service error to its HTTP status.
// notFound is the message used when the error wraps domain.ErrNotFound.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var overlap *service.OverlapError
	switch {
	case errors.As(err, &overlap):
		body := errorBody("conflict", overlap.Result.Message)
		body.Conflicts = findingsToJSON(overlap.Result.Conflicts)
		writeJSON(w, http.StatusConflict, body)
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFound))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("conflict", unwrapMessage(err)))
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// callSite matches the "layer.Type.Method" prefixes added while an error
// travels up the stack.
var callSite = regexp.MustCompile(`^[a-z]+(\.[A-Za-z]+)+$`)

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: country must be ..." → "country must be ..."
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	parts := strings.Split(err.Error(), ": ")
	for len(parts) > 1 && callSite.MatchString(parts[0]) {
		parts = parts[1:]
	}
	kept := parts[:0]
	for _, p := range parts {
		if p == domain.ErrValidation.Error() && len(parts) > 1 {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ": ")
}
