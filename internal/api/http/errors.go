package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"servicehours-backend/internal/domain"
	"servicehours-backend/internal/logger"
	"servicehours-backend/internal/repository"
	"servicehours-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps business-rule errors to deterministic status codes.
// Anything unmapped is an infrastructure failure and surfaces as a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrEventNotVisible),
		errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenInvalid):
		writeError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, domain.ErrDuplicateRegistration),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrEventNotActive),
		errors.Is(err, repository.ErrVersionConflict):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, domain.ErrAlreadyOpen),
		errors.Is(err, domain.ErrNoOpenRecord),
		errors.Is(err, domain.ErrInvalidOrder),
		errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrNoAttendanceRecorded),
		errors.Is(err, domain.ErrRegistrationNotApproved),
		errors.Is(err, domain.ErrReasonRequired),
		errors.Is(err, service.ErrInvalidEvent):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())

	default:
		logger.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
