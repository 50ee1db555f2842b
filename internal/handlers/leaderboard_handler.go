package handlers

import (
	"net/http"
	"strconv"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/internal/services"
)

// LeaderboardHandler handles the leaderboard read endpoint.
type LeaderboardHandler struct {
	Service *services.LeaderboardService
}

// NewLeaderboardHandler creates a new instance of LeaderboardHandler.
func NewLeaderboardHandler(service *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{Service: service}
}

// GetLeaderboardHandler returns the ranked top users by points. The
// optional ?limit= query parameter caps the result size.
func (h *LeaderboardHandler) GetLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	entries, err := h.Service.Top(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}
