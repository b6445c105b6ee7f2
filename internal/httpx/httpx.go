// Package httpx holds small HTTP helpers shared by the REST layers: JSON
// encoding, request decoding, and the single place where sentinel errors are
// mapped to status codes.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/2003dinijay/ChatStack/internal/common"
)

// ErrorResponse is the uniform error payload returned by every service.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the uniform success payload for operations that return
// no resource (verify, resendOtp, resetPassword).
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON encodes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return common.ErrValidation
	}
	return nil
}

// StatusCode maps a sentinel error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrOtpMismatch):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrOtpExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err using the taxonomy above. Ozzo validation errors are
// reported verbatim with a 400; unclassified errors become an opaque 500 so
// that internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: verrs.Error()})
		return
	}

	status := StatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	WriteJSON(w, status, ErrorResponse{Error: msg})
}
