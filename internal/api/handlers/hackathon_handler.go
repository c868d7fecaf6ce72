package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
	"github.com/central-university-dev/go-hackathon-tracker/internal/service"
)

const crudNotFound = "Not found"

type HackathonService interface {
	List(ctx context.Context) ([]models.Hackathon, error)

	Get(ctx context.Context, id string) (*models.Hackathon, error)

	Create(ctx context.Context, input service.HackathonInput) (*models.Hackathon, error)

	Update(ctx context.Context, id string, input service.HackathonInput) (*models.Hackathon, error)

	Delete(ctx context.Context, id string) error

	Calendar(ctx context.Context, id string) (*service.CalendarLinks, error)
}

type HackathonHandler struct {
	service HackathonService
	logger  *slog.Logger
}

func NewHackathonHandler(svc HackathonService, logger *slog.Logger) *HackathonHandler {
	return &HackathonHandler{
		service: svc,
		logger:  logger,
	}
}

func (h *HackathonHandler) List(w http.ResponseWriter, r *http.Request) {
	hackathons, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, hackathons)
}

func (h *HackathonHandler) Get(w http.ResponseWriter, r *http.Request) {
	hackathon, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, hackathon)
}

func (h *HackathonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.HackathonInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	hackathon, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, hackathon)
}

func (h *HackathonHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.HackathonInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	hackathon, err := h.service.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, hackathon)
}

func (h *HackathonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HackathonHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.Calendar(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, links)
}
