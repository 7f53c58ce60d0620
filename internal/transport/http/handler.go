// Package httptransport exposes the operational surface: health, metrics,
// and a manual check trigger for operators who do not want to wait for the
// schedule.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"passwatch/internal/notify"
)

// Runner triggers one pipeline check.
type Runner interface {
	RunOnce(ctx context.Context) (*notify.Report, error)
}

// Handler is the thin HTTP layer. It delegates to the pipeline without
// embedding any expiration logic.
type Handler struct {
	runner     Runner
	logger     *slog.Logger
	adminToken string
}

func NewHandler(runner Runner, adminToken string, logger *slog.Logger) *Handler {
	return &Handler{runner: runner, logger: logger, adminToken: adminToken}
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCheck starts a check in the background and returns immediately; a
// full run can take minutes against a large directory.
func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	if h.adminToken == "" || r.Header.Get("X-Admin-Token") != h.adminToken {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}

	go func() {
		if _, err := h.runner.RunOnce(context.Background()); err != nil {
			h.logger.Error("manual check failed", "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "check started"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
