// Package render writes JSON responses and maps domain errors to status codes.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/networth/internal/account"
	"github.com/MrJamesThe3rd/networth/internal/category"
	"github.com/MrJamesThe3rd/networth/internal/importer"
	"github.com/MrJamesThe3rd/networth/internal/rule"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
	"github.com/MrJamesThe3rd/networth/internal/validate"
)

const internalError = "Internal server error"

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Success acknowledges a delete.
func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, successResponse{Success: true})
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Error picks the status for err. Unexpected errors are logged and their
// text is not sent to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var linked *category.LinkedTransactionsError

	switch {
	case errors.Is(err, validate.ErrInvalid),
		errors.Is(err, transaction.ErrUnknownReference),
		errors.Is(err, importer.ErrUnknownBank),
		errors.Is(err, importer.ErrUnreadable):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &linked):
		Message(w, http.StatusConflict, linked.Error())
	case errors.Is(err, rule.ErrDuplicate),
		errors.Is(err, category.ErrInUse):
		Message(w, http.StatusConflict, err.Error())
	case errors.Is(err, account.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, rule.ErrNotFound):
		Message(w, http.StatusNotFound, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		Message(w, http.StatusInternalServerError, internalError)
	}
}

// Decode reads a JSON body into v.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return validate.Errorf("", "invalid request body: %v", err)
	}

	return nil
}

// ID parses the {id} URL parameter.
func ID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, validate.Errorf("id", "invalid id")
	}

	return id, nil
}

// OptionalID parses a query parameter holding an id; empty means unset.
func OptionalID(r *http.Request, name string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, validate.Errorf(name, "%s must be a valid id", name)
	}

	return &id, nil
}
