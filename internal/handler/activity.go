package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/activity"
)

// ActivityHandler serves the bounded activity feed.
type ActivityHandler struct {
	service activity.Service
}

func NewActivityHandler(service activity.Service) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// HandleGetUserActivity returns a user's recent activity, newest first
func (h *ActivityHandler) HandleGetUserActivity(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit, ok := GetLimitParam(r, w, activity.DefaultFeedLimit)
	if !ok {
		return
	}

	entries, err := h.service.GetUserActivity(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetActivityFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: entries})
}

// HandleGetRecentActivity returns the global feed, newest first
func (h *ActivityHandler) HandleGetRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetLimitParam(r, w, activity.DefaultFeedLimit)
	if !ok {
		return
	}

	entries, err := h.service.GetRecentActivity(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetActivityFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: entries})
}
