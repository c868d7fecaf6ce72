package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
	"github.com/central-university-dev/go-hackathon-tracker/internal/service"
)

type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)

	Save(ctx context.Context, input service.SettingsInput) (models.Settings, error)
}

type SettingsHandler struct {
	service SettingsService
	logger  *slog.Logger
}

func NewSettingsHandler(svc SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: svc,
		logger:  logger,
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var input service.SettingsInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	settings, err := h.service.Save(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
