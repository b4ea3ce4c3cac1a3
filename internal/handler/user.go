package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/progression"
)

// RegisterUserRequest is the body for creating a new user.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50,excludesall= "`
}

// RegisterUserResponse carries the fresh progression record.
type RegisterUserResponse struct {
	Message string               `json:"message"`
	User    *domain.UserProgress `json:"user"`
}

// HandleRegisterUser registers a new user at level 1
func HandleRegisterUser(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		user, err := svc.RegisterUser(r.Context(), req.Username)
		if err != nil {
			respondServiceError(w, r, ErrMsgRegisterUserFailed, err)
			return
		}

		respondJSON(w, http.StatusCreated, RegisterUserResponse{
			Message: MsgUserRegistered,
			User:    user,
		})
	}
}

// HandleGetUser returns a user's full progression record
func HandleGetUser(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		user, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetUserFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}

// HandleGetLeaderboard returns the top users by level then XP
func HandleGetLeaderboard(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetLimitParam(r, w, progression.DefaultLeaderboardLimit)
		if !ok {
			return
		}

		entries, err := svc.GetLeaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetLeaderboardFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}

// EquipItemRequest is the body for equipping an inventory item.
type EquipItemRequest struct {
	UserID string `json:"user_id" validate:"required"`
	ItemID string `json:"item_id" validate:"required"`
	Slot   string `json:"slot" validate:"required,equipslot"`
}

// HandleEquipItem moves an inventory item into an equipment slot
func HandleEquipItem(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EquipItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		slot := domain.EquipmentSlot(strings.ToLower(req.Slot))
		user, err := svc.EquipItem(r.Context(), req.UserID, req.ItemID, slot)
		if err != nil {
			respondServiceError(w, r, ErrMsgEquipItemFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}

// UnequipItemRequest is the body for clearing an equipment slot.
type UnequipItemRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Slot   string `json:"slot" validate:"required,equipslot"`
}

// HandleUnequipItem returns an equipped item to the inventory
func HandleUnequipItem(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UnequipItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unequip item"); err != nil {
			return
		}

		slot := domain.EquipmentSlot(strings.ToLower(req.Slot))
		user, err := svc.UnequipItem(r.Context(), req.UserID, slot)
		if err != nil {
			respondServiceError(w, r, ErrMsgUnequipItemFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}
