package handler

import (
	"net/http"
	"strings"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/progression"
)

// RecordWorkoutRequest is the body for submitting one workout set.
type RecordWorkoutRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Exercise string `json:"exercise" validate:"required,exercise"`
	Reps     int    `json:"reps" validate:"required,min=1,max=1000"`
}

// RecordWorkoutResponse returns what the set earned.
type RecordWorkoutResponse struct {
	Message string                `json:"message"`
	Result  *domain.WorkoutResult `json:"result"`
}

// HandleRecordWorkout applies a workout through the progression ledger.
// Everything downstream (quests, duels, raids, achievements, the
// activity feed) reacts to the published event, not to this handler.
func HandleRecordWorkout(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordWorkoutRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record workout"); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		log.Debug("Recording workout", "user_id", req.UserID, "exercise", req.Exercise, "reps", req.Reps)

		exercise := domain.Exercise(strings.ToLower(req.Exercise))
		result, err := svc.ApplyWorkout(r.Context(), req.UserID, exercise, req.Reps)
		if err != nil {
			respondServiceError(w, r, ErrMsgRecordWorkoutFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, RecordWorkoutResponse{
			Message: MsgWorkoutRecorded,
			Result:  result,
		})
	}
}

// HandleListExercises returns the exercises the ledger accepts.
func HandleListExercises() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: domain.ValidExercises})
	}
}
