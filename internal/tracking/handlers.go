package tracking

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Handler exposes the location-ingestion endpoint over HTTP.
type Handler struct {
	Eval *Evaluator
}

type reportRequest struct {
	UserID     *int64   `json:"user_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	InsideZone *bool    `json:"inside_zone"`
}

// ReportLocationHandler accepts one location report from a mobile client.
func (h *Handler) ReportLocationHandler(w http.ResponseWriter, r *http.Request) {
	var input reportRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.UserID == nil || input.Latitude == nil || input.Longitude == nil {
		http.Error(w, "user_id, latitude and longitude are required", http.StatusBadRequest)
		return
	}

	result, err := h.Eval.ReportLocation(r.Context(), Report{
		UserID:     *input.UserID,
		Latitude:   *input.Latitude,
		Longitude:  *input.Longitude,
		InsideZone: input.InsideZone,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			log.Printf("[tracking] report for user %d failed: %v", *input.UserID, err)
			http.Error(w, "Failed to record location", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
