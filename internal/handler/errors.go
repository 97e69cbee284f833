package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/Chamas111/booking-airbnb/internal/models"
	"github.com/Chamas111/booking-airbnb/internal/service"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse - standard error body
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError translates a service error into its status code. Internal
// details are logged, never sent.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, service.ErrInvalidCredentials.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrValidation):
		WriteError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrUnauthenticated):
		WriteError(w, service.ErrUnauthenticated.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, service.ErrFetch):
		h.Logger.Info().Err(err).Str("path", r.URL.Path).Msg("remote image fetch failed")
		WriteError(w, service.ErrFetch.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrStorage):
		h.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("photo storage failed")
		WriteError(w, "Cannot store photo", http.StatusBadGateway)
	default:
		h.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		WriteError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON reads a bounded JSON body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var numErr *numberError
		if errors.As(err, &numErr) {
			WriteError(w, numErr.Error(), http.StatusUnprocessableEntity)
			return false
		}
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// validateBody answers 422 with the first failing field.
func (h *Handlers) validateBody(w http.ResponseWriter, body interface{}) bool {
	err := h.Validate.Struct(body)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		WriteError(w, describeFieldError(fieldErrs[0]), http.StatusUnprocessableEntity)
		return false
	}

	WriteError(w, "Invalid data", http.StatusUnprocessableEntity)
	return false
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	if ns := fe.Namespace(); strings.Contains(ns, "[") {
		// dive errors: keep the index, drop the struct name
		field = ns[strings.Index(ns, ".")+1:]
	}

	unit := ""
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice:
		unit = " items"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s%s", field, fe.Param(), unit)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s%s", field, fe.Param(), unit)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case perkTag:
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(models.Perks, " "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
