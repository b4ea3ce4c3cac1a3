package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/quest"
)

// QuestHandler serves quest board reads and reward claims.
type QuestHandler struct {
	service quest.Service
}

func NewQuestHandler(service quest.Service) *QuestHandler {
	return &QuestHandler{service: service}
}

// HandleGetUserQuests returns the user's current quest board
func (h *QuestHandler) HandleGetUserQuests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	quests, err := h.service.GetUserQuests(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetQuestsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: quests})
}

// ClaimQuestRequest is the body for claiming a completed quest.
type ClaimQuestRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	QuestID string `json:"quest_id" validate:"required"`
}

// ClaimQuestResponse reports the XP granted by the claim.
type ClaimQuestResponse struct {
	Message  string `json:"message"`
	XPEarned int    `json:"xp_earned"`
}

// HandleClaimQuestReward claims a completed quest's XP reward.
// Completion alone never grants XP; this is the explicit claim step.
func (h *QuestHandler) HandleClaimQuestReward(w http.ResponseWriter, r *http.Request) {
	var req ClaimQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim quest reward"); err != nil {
		return
	}

	xp, err := h.service.ClaimQuestReward(r.Context(), req.UserID, req.QuestID)
	if err != nil {
		respondServiceError(w, r, ErrMsgClaimRewardFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, ClaimQuestResponse{
		Message:  MsgQuestRewardClaimed,
		XPEarned: xp,
	})
}
