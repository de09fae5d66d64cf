// Package shared holds response helpers used by every HTTP handler.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "edupath/pkg/domain-errors"
)

// errorResponse is the wire shape for all error replies.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes v with the given status. Encoding failures are silently
// dropped since the header is already out.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// StatusOf maps a domain error code to an HTTP status. Uncoded errors map
// to 500.
func StatusOf(err error) int {
	var dErr *dErrors.Error
	if !errors.As(err, &dErr) {
		return http.StatusInternalServerError
	}
	switch dErr.Code {
	case dErrors.CodeInvalidInput, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps a domain error code to an HTTP status and writes the error
// body. Unknown errors become 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) {
	var dErr *dErrors.Error
	if !errors.As(err, &dErr) {
		WriteJSON(w, http.StatusInternalServerError, errorResponse{
			Error: string(dErrors.CodeInternal), Message: "internal error",
		})
		return
	}
	WriteJSON(w, StatusOf(err), errorResponse{Error: string(dErr.Code), Message: dErr.Message})
}
