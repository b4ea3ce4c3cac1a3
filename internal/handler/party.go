package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/party"
)

// PartyHandler serves party lifecycle operations.
type PartyHandler struct {
	service party.Service
}

func NewPartyHandler(service party.Service) *PartyHandler {
	return &PartyHandler{service: service}
}

// CreatePartyRequest is the body for founding a party.
type CreatePartyRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required,min=1,max=50"`
}

// PartyResponse wraps a party with a human message.
type PartyResponse struct {
	Message string        `json:"message"`
	Party   *domain.Party `json:"party"`
}

// HandleCreateParty creates a party with the caller as owner
func (h *PartyHandler) HandleCreateParty(w http.ResponseWriter, r *http.Request) {
	var req CreatePartyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create party"); err != nil {
		return
	}

	created, err := h.service.CreateParty(r.Context(), req.UserID, req.Name)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreatePartyFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, PartyResponse{Message: MsgPartyCreated, Party: created})
}

// JoinPartyRequest is the body for joining by invite code.
type JoinPartyRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	InviteCode string `json:"invite_code" validate:"required,len=6"`
}

// HandleJoinParty joins the party holding the invite code
func (h *PartyHandler) HandleJoinParty(w http.ResponseWriter, r *http.Request) {
	var req JoinPartyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Join party"); err != nil {
		return
	}

	joined, err := h.service.JoinParty(r.Context(), req.UserID, req.InviteCode)
	if err != nil {
		respondServiceError(w, r, ErrMsgJoinPartyFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, PartyResponse{Message: MsgPartyJoined, Party: joined})
}

// MemberRequest is the body for operations keyed only by the caller.
type MemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleLeaveParty removes the caller from their party
func (h *PartyHandler) HandleLeaveParty(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Leave party"); err != nil {
		return
	}

	if err := h.service.LeaveParty(r.Context(), req.UserID); err != nil {
		respondServiceError(w, r, ErrMsgLeavePartyFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPartyLeft})
}

// KickMemberRequest is the body for removing another member.
type KickMemberRequest struct {
	OwnerID  string `json:"owner_id" validate:"required"`
	TargetID string `json:"target_id" validate:"required"`
}

// HandleKickMember removes a member (owner only)
func (h *PartyHandler) HandleKickMember(w http.ResponseWriter, r *http.Request) {
	var req KickMemberRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Kick member"); err != nil {
		return
	}

	updated, err := h.service.KickMember(r.Context(), req.OwnerID, req.TargetID)
	if err != nil {
		respondServiceError(w, r, ErrMsgKickMemberFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, PartyResponse{Message: MsgMemberKicked, Party: updated})
}

// HandleDisbandParty deactivates the party (owner only)
func (h *PartyHandler) HandleDisbandParty(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Disband party"); err != nil {
		return
	}

	if err := h.service.DisbandParty(r.Context(), req.UserID); err != nil {
		respondServiceError(w, r, ErrMsgDisbandPartyFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPartyDisbanded})
}

// HandleRegenerateInviteCode rotates the invite code (owner only)
func (h *PartyHandler) HandleRegenerateInviteCode(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Regenerate invite code"); err != nil {
		return
	}

	updated, err := h.service.RegenerateInviteCode(r.Context(), req.UserID)
	if err != nil {
		respondServiceError(w, r, ErrMsgRegenerateCodeFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, PartyResponse{Message: MsgInviteRegenerated, Party: updated})
}

// HandleGetParty returns one party by id
func (h *PartyHandler) HandleGetParty(w http.ResponseWriter, r *http.Request) {
	partyID := chi.URLParam(r, "partyID")

	p, err := h.service.GetParty(r.Context(), partyID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetPartyFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleGetPartyForUser returns the party a user belongs to
func (h *PartyHandler) HandleGetPartyForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	p, err := h.service.GetPartyForUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetPartyFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}
