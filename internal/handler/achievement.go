package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/achievement"
)

// AchievementHandler serves the static catalog and per-user unlocks.
type AchievementHandler struct {
	service achievement.Service
}

func NewAchievementHandler(service achievement.Service) *AchievementHandler {
	return &AchievementHandler{service: service}
}

// HandleGetCatalog returns the full achievement catalog
func (h *AchievementHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.service.GetCatalog(r.Context())})
}

// UnlockedAchievement pairs an achievement id with its unlock time.
type UnlockedAchievement struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// HandleGetUserAchievements returns the user's unlocked achievements
func (h *AchievementHandler) HandleGetUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	unlocked, err := h.service.GetUnlocked(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetAchievementsFailed, err)
		return
	}

	entries := make([]UnlockedAchievement, 0, len(unlocked))
	for id, at := range unlocked {
		entries = append(entries, UnlockedAchievement{AchievementID: id, UnlockedAt: at})
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: entries})
}
