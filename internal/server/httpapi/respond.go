// Package httpapi provides the HTTP transport for the taskkeeper server:
// routing, bearer-token middleware, and the auth/todo handlers.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// errorResponse is the uniform error envelope. Errors carries field-level
// validation details on 400 responses.
type errorResponse struct {
	Message string                    `json:"message"`
	Errors  []*common.ValidationError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto the HTTP taxonomy. Every unauthorized
// condition renders the same body, so responses carry no oracle about which
// check failed.
func writeError(w http.ResponseWriter, err error) {
	var vErr *common.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "validation failed",
			Errors:  []*common.ValidationError{vErr},
		})
	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Message: "already exists"})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "unauthorized"})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}
}

func writeValidationErrors(w http.ResponseWriter, errs []*common.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Message: "validation failed",
		Errors:  errs,
	})
}
