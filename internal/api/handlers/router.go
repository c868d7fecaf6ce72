package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// NewRouter собирает http.Handler со всеми эндпоинтами API трекера.
func NewRouter(
	hackathons HackathonService,
	members MemberService,
	settings SettingsService,
	telegram TelegramService,
	notifyTimeout time.Duration,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()

	hackathonHandler := NewHackathonHandler(hackathons, logger)
	memberHandler := NewMemberHandler(members, logger)
	settingsHandler := NewSettingsHandler(settings, logger)
	telegramHandler := NewTelegramHandler(telegram, notifyTimeout, logger)

	// Hackathons
	mux.HandleFunc("GET /api/hackathons", hackathonHandler.List)
	mux.HandleFunc("POST /api/hackathons", hackathonHandler.Create)
	mux.HandleFunc("GET /api/hackathons/{id}", hackathonHandler.Get)
	mux.HandleFunc("PUT /api/hackathons/{id}", hackathonHandler.Update)
	mux.HandleFunc("DELETE /api/hackathons/{id}", hackathonHandler.Delete)
	mux.HandleFunc("GET /api/hackathons/{id}/calendar", hackathonHandler.Calendar)

	// Members
	mux.HandleFunc("GET /api/members", memberHandler.List)
	mux.HandleFunc("POST /api/members", memberHandler.Create)
	mux.HandleFunc("PUT /api/members/{id}", memberHandler.Update)
	mux.HandleFunc("DELETE /api/members/{id}", memberHandler.Delete)

	// Settings
	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PUT /api/settings", settingsHandler.Save)

	// Telegram
	mux.HandleFunc("GET /api/telegram", telegramHandler.Scan)
	mux.HandleFunc("POST /api/telegram", telegramHandler.Notify)
	mux.HandleFunc("POST /api/telegram/test", telegramHandler.Test)

	return mux
}
