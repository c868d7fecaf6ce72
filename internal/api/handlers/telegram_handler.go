package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

const (
	ActionVerifyToken = "verify-token"
	ActionTestMember  = "test-member"
	ActionTestAll     = "test-all"
)

type TelegramService interface {
	Notify(ctx context.Context, hackathonID string) (*models.Report, error)

	VerifyToken(ctx context.Context) (*models.BotCheck, error)

	TestMember(ctx context.Context, memberID string) (string, error)

	TestAll(ctx context.Context) (*models.TestReport, error)
}

type notifyRequest struct {
	HackathonID string `json:"hackathonId"`
}

type testRequest struct {
	Action   string `json:"action"`
	MemberID string `json:"memberId"`
}

type verifyTokenResponse struct {
	Success bool `json:"success"`
	*models.BotCheck
}

type testMemberResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type TelegramHandler struct {
	service       TelegramService
	notifyTimeout time.Duration
	logger        *slog.Logger
}

func NewTelegramHandler(svc TelegramService, notifyTimeout time.Duration, logger *slog.Logger) *TelegramHandler {
	return &TelegramHandler{
		service:       svc,
		notifyTimeout: notifyTimeout,
		logger:        logger,
	}
}

// Scan запускает плановую проверку всех хакатонов; его вызывает cron.
func (h *TelegramHandler) Scan(w http.ResponseWriter, r *http.Request) {
	h.notify(w, r, "")
}

// Notify принимает необязательный hackathonId. Тело, которое не удалось
// разобрать, равносильно пустому запросу.
func (h *TelegramHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = notifyRequest{}
	}

	h.notify(w, r, req.HackathonID)
}

func (h *TelegramHandler) notify(w http.ResponseWriter, r *http.Request, hackathonID string) {
	ctx := r.Context()

	if h.notifyTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, h.notifyTimeout)
		defer cancel()
	}

	report, err := h.service.Notify(ctx, hackathonID)
	if err != nil {
		writeError(w, h.logger, err, "Hackathon not found")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *TelegramHandler) Test(w http.ResponseWriter, r *http.Request) {
	var req testRequest
	if err := decodeJSON(r, &req); err != nil {
		writeTesterError(w, h.logger, err)
		return
	}

	ctx := r.Context()

	switch {
	case req.Action == ActionVerifyToken:
		check, err := h.service.VerifyToken(ctx)
		if err != nil {
			writeTesterError(w, h.logger, err)
			return
		}

		writeJSON(w, http.StatusOK, verifyTokenResponse{Success: true, BotCheck: check})
	case req.Action == ActionTestMember && req.MemberID != "":
		message, err := h.service.TestMember(ctx, req.MemberID)
		if err != nil {
			writeTesterError(w, h.logger, err)
			return
		}

		writeJSON(w, http.StatusOK, testMemberResponse{Success: true, Message: message})
	case req.Action == ActionTestAll:
		report, err := h.service.TestAll(ctx)
		if err != nil {
			writeTesterError(w, h.logger, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	default:
		// test-member без memberId считается неизвестным действием.
		writeTesterError(w, h.logger, &domainerrors.ErrUnknownAction{Action: req.Action})
	}
}
