package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skyward/tower/internal/domain"
	"skyward/tower/internal/logging"
	"skyward/tower/internal/models/dtos"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := dtos.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithDomainError maps the domain error taxonomy onto HTTP.
// Transient failures carry a Retry-After hint; anything uncategorized is
// an internal error and logged.
func respondWithDomainError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	statusCode := http.StatusInternalServerError
	switch kind {
	case domain.KindValidation:
		statusCode = http.StatusBadRequest
	case domain.KindNotFound:
		statusCode = http.StatusNotFound
	case domain.KindConflict:
		statusCode = http.StatusConflict
	case domain.KindTransient:
		statusCode = http.StatusServiceUnavailable
		w.Header().Set("Retry-After", "1")
	default:
		logging.Error("Unhandled internal error", "error", err.Error())
		respondWithError(w, statusCode, "internal server error")
		return
	}

	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     err.Error(),
		Category:  string(kind),
	}
	var de *domain.Error
	if errors.As(err, &de) {
		resp.Fields = de.Fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
