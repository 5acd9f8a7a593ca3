package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/service"
	"go.uber.org/zap"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondWithError sends the standard failure body
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.ErrorResponse{Success: false, Error: message})
}

// respondServiceError maps a service error to its status code. Unexpected
// errors are logged and reported as "<operation> failed" with the cause in
// details.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, operation string, err error) {
	var missing *service.MissingFieldsError
	var enum *service.InvalidEnumError
	var fieldErr *service.FieldError

	switch {
	case errors.As(err, &missing), errors.As(err, &enum), errors.As(err, &fieldErr):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateVendorName):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPdfGenerationFailed):
		logger.Error(operation+" failed", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Success: false,
			Error:   service.ErrPdfGenerationFailed.Error(),
			Details: err.Error(),
		})
	default:
		logger.Error(operation+" failed", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Success: false,
			Error:   fmt.Sprintf("Failed to %s", operation),
			Details: err.Error(),
		})
	}
}

// decodeJSON reads a request body into dst and runs struct validation.
// Unknown keys are ignored. It writes the 400 response itself and reports
// whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// respondValidationError reports the first failing field
func respondValidationError(w http.ResponseWriter, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	messages := make([]string, 0, len(ve))
	for _, fe := range ve {
		messages = append(messages, toJSONFieldName(fe.Field())+" "+formatValidationError(fe))
	}
	respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
		Success: false,
		Error:   "Validation failed",
		Details: strings.Join(messages, "; "),
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go field name such as VendorGST to vendor_gst
func toJSONFieldName(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseID reads the {id} path parameter
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, service.ErrInvalidID.Error())
		return uuid.Nil, false
	}
	return id, true
}
