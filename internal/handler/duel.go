package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/duel"
)

// DuelHandler serves head-to-head rep race operations.
type DuelHandler struct {
	service duel.Service
}

func NewDuelHandler(service duel.Service) *DuelHandler {
	return &DuelHandler{service: service}
}

// CreateDuelRequest is the body for issuing a challenge.
// DurationHours of zero uses the default 24h window.
type CreateDuelRequest struct {
	ChallengerID  string `json:"challenger_id" validate:"required"`
	OpponentID    string `json:"opponent_id" validate:"required"`
	ChallengeType string `json:"challenge_type" validate:"required"`
	DurationHours int    `json:"duration_hours" validate:"min=0,max=168"`
}

// CreateDuelResponse confirms the pending challenge.
type CreateDuelResponse struct {
	Message string       `json:"message"`
	Duel    *domain.Duel `json:"duel"`
}

// HandleCreateDuel issues a pending duel challenge
func (h *DuelHandler) HandleCreateDuel(w http.ResponseWriter, r *http.Request) {
	var req CreateDuelRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create duel"); err != nil {
		return
	}

	duration := time.Duration(req.DurationHours) * time.Hour
	created, err := h.service.CreateDuel(r.Context(), req.ChallengerID, req.OpponentID, req.ChallengeType, duration)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateDuelFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateDuelResponse{
		Message: MsgDuelCreated,
		Duel:    created,
	})
}

// AnswerDuelRequest is the body for accepting or declining.
type AnswerDuelRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleAcceptDuel accepts a pending challenge (opponent only)
func (h *DuelHandler) HandleAcceptDuel(w http.ResponseWriter, r *http.Request) {
	duelID := chi.URLParam(r, "duelID")

	var req AnswerDuelRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Accept duel"); err != nil {
		return
	}

	accepted, err := h.service.AcceptDuel(r.Context(), duelID, req.UserID)
	if err != nil {
		respondServiceError(w, r, ErrMsgAcceptDuelFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgDuelAccepted, Data: accepted})
}

// HandleDeclineDuel declines a pending challenge (opponent only)
func (h *DuelHandler) HandleDeclineDuel(w http.ResponseWriter, r *http.Request) {
	duelID := chi.URLParam(r, "duelID")

	var req AnswerDuelRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Decline duel"); err != nil {
		return
	}

	declined, err := h.service.DeclineDuel(r.Context(), duelID, req.UserID)
	if err != nil {
		respondServiceError(w, r, ErrMsgDeclineDuelFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgDuelDeclined, Data: declined})
}

// HandleGetDuel returns one duel, settling it first if due
func (h *DuelHandler) HandleGetDuel(w http.ResponseWriter, r *http.Request) {
	duelID := chi.URLParam(r, "duelID")

	d, err := h.service.GetDuel(r.Context(), duelID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetDuelFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, d)
}

// HandleGetUserDuels lists a user's duels, optionally filtered by a
// comma-separated status query parameter.
func (h *DuelHandler) HandleGetUserDuels(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var statuses []domain.DuelStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, domain.DuelStatus(strings.TrimSpace(s)))
		}
	}

	duels, err := h.service.GetDuelsForUser(r.Context(), userID, statuses...)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetDuelsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: duels})
}
