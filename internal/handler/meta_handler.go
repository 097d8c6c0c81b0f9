package handler

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
)

// MetaHandler отдает метаданные API и состояние сервиса.
type MetaHandler struct {
	db      *sqlx.DB
	title   string
	version string
	logger  *slog.Logger
}

// NewMetaHandler создаёт новый экземпляр MetaHandler.
func NewMetaHandler(db *sqlx.DB, title, version string, logger *slog.Logger) *MetaHandler {
	return &MetaHandler{
		db:      db,
		title:   title,
		version: version,
		logger:  logger,
	}
}

// GetAPIInfo — отдает метаданные API на корневом эндпоинте.
func (h *MetaHandler) GetAPIInfo(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"title":       h.title,
		"version":     h.version,
		"description": "REST API для пользователей, книг и выдач",
	}, h.logger)
}

// GetHealth — проверяет доступность базы данных.
func (h *MetaHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}
