package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/territory"
)

// TerritoryHandler serves gym territory control operations.
type TerritoryHandler struct {
	service territory.Service
}

func NewTerritoryHandler(service territory.Service) *TerritoryHandler {
	return &TerritoryHandler{service: service}
}

// RegisterLocationRequest is the body for adding a gym to the map.
type RegisterLocationRequest struct {
	PlaceID string `json:"place_id" validate:"required"`
	Name    string `json:"name" validate:"required,min=1,max=100"`
}

// HandleRegisterLocation adds a gym location, initially uncontrolled
func (h *TerritoryHandler) HandleRegisterLocation(w http.ResponseWriter, r *http.Request) {
	var req RegisterLocationRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register location"); err != nil {
		return
	}

	loc, err := h.service.RegisterLocation(r.Context(), req.PlaceID, req.Name)
	if err != nil {
		respondServiceError(w, r, ErrMsgRegisterLocationFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgLocationRegistered, Data: loc})
}

// HandleListLocations returns every registered gym location
func (h *TerritoryHandler) HandleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListLocations(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgListLocationsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: locations})
}

// HandleGetLocation returns one gym location
func (h *TerritoryHandler) HandleGetLocation(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	loc, err := h.service.GetLocation(r.Context(), locationID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetLocationFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, loc)
}

// LocationActionRequest is the body for claim/challenge/defend calls.
type LocationActionRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleClaimLocation takes an uncontrolled location for the caller's club
func (h *TerritoryHandler) HandleClaimLocation(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	var req LocationActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim location"); err != nil {
		return
	}

	loc, err := h.service.Claim(r.Context(), req.UserID, locationID)
	if err != nil {
		respondServiceError(w, r, ErrMsgClaimLocationFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgLocationClaimed, Data: loc})
}

// BattleResponse reports the outcome of a territory challenge.
type BattleResponse struct {
	Battle *domain.BattleResult `json:"battle"`
}

// HandleChallengeLocation attacks a rival-held location
func (h *TerritoryHandler) HandleChallengeLocation(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	var req LocationActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Challenge location"); err != nil {
		return
	}

	battle, err := h.service.Challenge(r.Context(), req.UserID, locationID)
	if err != nil {
		respondServiceError(w, r, ErrMsgChallengeFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, BattleResponse{Battle: battle})
}

// HandleDefendLocation reinforces a location the caller's club controls
func (h *TerritoryHandler) HandleDefendLocation(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	var req LocationActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Defend location"); err != nil {
		return
	}

	loc, err := h.service.Defend(r.Context(), req.UserID, locationID)
	if err != nil {
		respondServiceError(w, r, ErrMsgDefendFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgLocationDefended, Data: loc})
}
