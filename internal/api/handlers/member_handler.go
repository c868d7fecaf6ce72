package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
	"github.com/central-university-dev/go-hackathon-tracker/internal/service"
)

type MemberService interface {
	List(ctx context.Context) ([]models.Member, error)

	Create(ctx context.Context, input service.MemberInput) (*models.Member, error)

	Update(ctx context.Context, id string, input service.MemberInput) (*models.Member, error)

	Delete(ctx context.Context, id string) error
}

type MemberHandler struct {
	service MemberService
	logger  *slog.Logger
}

func NewMemberHandler(svc MemberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		service: svc,
		logger:  logger,
	}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.MemberInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	member, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.MemberInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	member, err := h.service.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, err, crudNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
