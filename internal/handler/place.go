package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironquest/IronQuest_Go/internal/place"
)

// HandleGetPlace resolves a gym place id to its display details
func HandleGetPlace(lookup place.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		placeID := chi.URLParam(r, "placeID")

		details, err := lookup.FindPlace(r.Context(), placeID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetPlaceFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, details)
	}
}
