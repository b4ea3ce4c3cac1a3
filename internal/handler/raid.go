package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/raid"
)

// RaidHandler serves community raid boss operations.
type RaidHandler struct {
	service raid.Service
}

func NewRaidHandler(service raid.Service) *RaidHandler {
	return &RaidHandler{service: service}
}

// SpawnBossRequest is the body for spawning a new raid boss.
type SpawnBossRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	TotalHP       int    `json:"total_hp" validate:"required,min=1"`
	Vulnerability string `json:"vulnerability" validate:"required,exercise"`
}

// SpawnBossResponse confirms the spawned boss.
type SpawnBossResponse struct {
	Message string          `json:"message"`
	Boss    *domain.RaidBoss `json:"boss"`
}

// HandleSpawnBoss spawns a new boss, retiring any active one
func (h *RaidHandler) HandleSpawnBoss(w http.ResponseWriter, r *http.Request) {
	var req SpawnBossRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spawn raid boss"); err != nil {
		return
	}

	vulnerability := domain.Exercise(strings.ToLower(req.Vulnerability))
	boss, err := h.service.SpawnBoss(r.Context(), req.Name, req.TotalHP, vulnerability)
	if err != nil {
		respondServiceError(w, r, ErrMsgSpawnBossFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, SpawnBossResponse{
		Message: MsgBossSpawned,
		Boss:    boss,
	})
}

// HandleGetActiveBoss returns the currently active boss
func (h *RaidHandler) HandleGetActiveBoss(w http.ResponseWriter, r *http.Request) {
	boss, err := h.service.GetActiveBoss(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetBossFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, boss)
}

// HandleGetBoss returns one boss by id, active or retired
func (h *RaidHandler) HandleGetBoss(w http.ResponseWriter, r *http.Request) {
	bossID := chi.URLParam(r, "bossID")

	boss, err := h.service.GetBoss(r.Context(), bossID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetBossFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, boss)
}
