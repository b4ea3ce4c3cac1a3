package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/club"
)

// ClubHandler serves club membership operations.
type ClubHandler struct {
	service club.Service
}

func NewClubHandler(service club.Service) *ClubHandler {
	return &ClubHandler{service: service}
}

// CreateClubRequest is the body for founding a club.
type CreateClubRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required,min=1,max=50"`
	Tag    string `json:"tag" validate:"required,min=2,max=5"`
}

// HandleCreateClub creates a club with the caller as first member
func (h *ClubHandler) HandleCreateClub(w http.ResponseWriter, r *http.Request) {
	var req CreateClubRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create club"); err != nil {
		return
	}

	created, err := h.service.CreateClub(r.Context(), req.UserID, req.Name, req.Tag)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateClubFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgClubCreated, Data: created})
}

// JoinClubRequest is the body for joining an existing club.
type JoinClubRequest struct {
	UserID string `json:"user_id" validate:"required"`
	ClubID string `json:"club_id" validate:"required"`
}

// HandleJoinClub adds the caller to a club
func (h *ClubHandler) HandleJoinClub(w http.ResponseWriter, r *http.Request) {
	var req JoinClubRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Join club"); err != nil {
		return
	}

	joined, err := h.service.JoinClub(r.Context(), req.UserID, req.ClubID)
	if err != nil {
		respondServiceError(w, r, ErrMsgJoinClubFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgClubJoined, Data: joined})
}

// HandleLeaveClub removes the caller from their club
func (h *ClubHandler) HandleLeaveClub(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Leave club"); err != nil {
		return
	}

	if err := h.service.LeaveClub(r.Context(), req.UserID); err != nil {
		respondServiceError(w, r, ErrMsgLeaveClubFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgClubLeft})
}

// HandleGetClub returns a club summary with its territory count
func (h *ClubHandler) HandleGetClub(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")

	summary, err := h.service.GetClub(r.Context(), clubID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetClubFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// HandleGetClubForUser returns the club a user belongs to
func (h *ClubHandler) HandleGetClubForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	summary, err := h.service.GetClubForUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetClubFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
