package handler

import (
	"log/slog"
	"net/http"

	"github.com/jmeier/smartfridge/internal/service"
)

// DashboardHandler serves the aggregate summary behind the landing page.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *slog.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// HandleSummary returns counts and previews for a user.
//
// HTTP: GET /api/users/{id}/dashboard
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.dashboard.Summary(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
