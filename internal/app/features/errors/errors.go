// internal/app/features/errors/errors.go

// Package errors writes the API's JSON error and success envelopes.
// Handlers never build response bodies by hand; everything goes through
// these helpers so the wire shape stays uniform.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/commonshub/internal/domain/models"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a bare error envelope.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// WriteBadRequest writes a 400 for malformed or missing input.
func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, msg)
}

// WriteNotFound writes a 404.
func WriteNotFound(w http.ResponseWriter) {
	WriteError(w, http.StatusNotFound, "not found")
}

// WriteForbidden writes a 403 for policy denials.
func WriteForbidden(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusForbidden, msg)
}

// WriteServerError logs err and writes a 500 without leaking it.
func WriteServerError(w http.ResponseWriter, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	WriteError(w, http.StatusInternalServerError, msg)
}

// WriteValidation maps a models.ValidationError to a 422 with the field
// that failed; any other error falls through to a 500.
func WriteValidation(w http.ResponseWriter, log *zap.Logger, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		WriteJSON(w, http.StatusUnprocessableEntity, errorBody{Error: ve.Msg, Field: ve.Field})
		return
	}
	WriteServerError(w, log, "request failed", err)
}
