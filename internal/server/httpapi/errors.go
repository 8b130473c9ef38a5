package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"submission_service/internal/domain"
	"submission_service/internal/repository"
	"submission_service/internal/service"
)

func mapErr(err error) int {
	var eligibility *domain.EligibilityError
	if errors.As(err, &eligibility) {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidGrade),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDeadlineLocked):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	statusCode := mapErr(err)

	body := map[string]string{"error": http.StatusText(statusCode)}
	if statusCode != http.StatusInternalServerError {
		body["error"] = err.Error()
	}
	var eligibility *domain.EligibilityError
	if errors.As(err, &eligibility) {
		body["reason"] = string(eligibility.Reason)
	}

	writeJSON(w, statusCode, body)
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func parsePathUUID(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	if val == "" {
		return uuid.Nil, fmt.Errorf("missing path param: %s", key)
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return id, nil
}
