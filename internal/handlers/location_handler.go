package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"gruzBack/internal/models"
	"gruzBack/internal/services"
)

type LocationHandler struct {
	Service *services.LocationService
}

func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get(":user_id"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	var loc models.UserLocation
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	loc.UserID = userID
	if err := h.Service.UpdateUserLocation(r.Context(), loc); err != nil {
		log.Printf("UpdateLocation error: %v", err)
		http.Error(w, "Failed to update location", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get(":user_id"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	loc, err := h.Service.GetUserLocation(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrLocationNotFound) {
			http.Error(w, "Location not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get location", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(loc)
}
