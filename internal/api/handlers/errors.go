package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

type testerErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type httpError struct {
	Status  int
	Message string
}

// fromDomainError переводит доменную ошибку в статус и текст ответа.
// notFound задаёт текст 404, он различается между CRUD и рассылкой.
func fromDomainError(err error, notFound string) httpError {
	var (
		missingCredential *domainerrors.ErrMissingCredential
		invalidCredential *domainerrors.ErrInvalidCredential
		invalidValue      *domainerrors.ErrInvalidValue
		missingField      *domainerrors.ErrMissingRequiredField
		noChatAddress     *domainerrors.ErrNoChatAddress
		noReachable       *domainerrors.ErrNoReachableMembers
		deliveryFailed    *domainerrors.ErrDeliveryFailed
		unknownAction     *domainerrors.ErrUnknownAction
		badRequest        *domainerrors.ErrBadRequest
		hackathonNotFound *domainerrors.ErrHackathonNotFound
		memberNotFound    *domainerrors.ErrMemberNotFound
	)

	switch {
	case errors.As(err, &hackathonNotFound), errors.As(err, &memberNotFound):
		return httpError{Status: http.StatusNotFound, Message: notFound}
	case errors.As(err, &missingCredential),
		errors.As(err, &invalidCredential),
		errors.As(err, &invalidValue),
		errors.As(err, &missingField),
		errors.As(err, &noChatAddress),
		errors.As(err, &noReachable),
		errors.As(err, &deliveryFailed),
		errors.As(err, &unknownAction),
		errors.As(err, &badRequest):
		return httpError{Status: http.StatusBadRequest, Message: err.Error()}
	default:
		return httpError{Status: http.StatusInternalServerError, Message: "Failed"}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error, notFound string) {
	httpErr := fromDomainError(err, notFound)

	if httpErr.Status == http.StatusInternalServerError {
		logger.Error("Ошибка при обработке запроса", "error", err)
	}

	writeJSON(w, httpErr.Status, errorResponse{Error: httpErr.Message})
}

func writeTesterError(w http.ResponseWriter, logger *slog.Logger, err error) {
	httpErr := fromDomainError(err, "Member not found")

	if httpErr.Status == http.StatusInternalServerError {
		logger.Error("Ошибка при проверке подключения", "error", err)
	}

	writeJSON(w, httpErr.Status, testerErrorResponse{Success: false, Error: httpErr.Message})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domainerrors.ErrBadRequest{Message: "invalid JSON body"}
	}

	return nil
}
