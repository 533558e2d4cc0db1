package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"gruzBack/internal/models"
	"gruzBack/internal/services"
	"gruzBack/utils"
)

type EquipmentHandler struct {
	Service *services.EquipmentService
	Storage *utils.S3Storage
}

func (h *EquipmentHandler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	executorID, err := strconv.Atoi(r.URL.Query().Get(":executor_id"))
	if err != nil {
		http.Error(w, "Invalid executor id", http.StatusBadRequest)
		return
	}
	var e models.Equipment
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if e.EquipmentType == "" {
		http.Error(w, "Missing equipment type", http.StatusBadRequest)
		return
	}
	created, err := h.Service.AddEquipment(r.Context(), executorID, e)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotExecutor):
			http.Error(w, "User is not an executor", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidPrice), errors.Is(err, models.ErrInvalidRate):
			http.Error(w, "Invalid rates", http.StatusBadRequest)
		default:
			log.Printf("AddEquipment error: %v", err)
			http.Error(w, "Failed to add equipment", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *EquipmentHandler) GetEquipmentByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid equipment id", http.StatusBadRequest)
		return
	}
	equipment, err := h.Service.GetEquipment(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrEquipmentNotFound) {
			http.Error(w, "Equipment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get equipment", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(equipment)
}

func (h *EquipmentHandler) GetExecutorEquipment(w http.ResponseWriter, r *http.Request) {
	executorID, err := strconv.Atoi(r.URL.Query().Get(":executor_id"))
	if err != nil {
		http.Error(w, "Invalid executor id", http.StatusBadRequest)
		return
	}
	equipment, err := h.Service.GetExecutorEquipment(r.Context(), executorID)
	if err != nil {
		http.Error(w, "Failed to get equipment", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(equipment)
}

func (h *EquipmentHandler) GetAvailableEquipmentByType(w http.ResponseWriter, r *http.Request) {
	equipmentType := r.URL.Query().Get(":type")
	if equipmentType == "" {
		http.Error(w, "Missing equipment type", http.StatusBadRequest)
		return
	}
	equipment, err := h.Service.GetAvailableEquipmentByType(r.Context(), equipmentType)
	if err != nil {
		http.Error(w, "Failed to get equipment", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(equipment)
}

func (h *EquipmentHandler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid equipment id", http.StatusBadRequest)
		return
	}
	var patch models.EquipmentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	updated, err := h.Service.UpdateEquipment(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEquipmentNotFound):
			http.Error(w, "Equipment not found", http.StatusNotFound)
		case errors.Is(err, models.ErrInvalidPrice), errors.Is(err, models.ErrInvalidRate):
			http.Error(w, "Invalid rates", http.StatusBadRequest)
		default:
			log.Printf("UpdateEquipment error: %v", err)
			http.Error(w, "Failed to update equipment", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *EquipmentHandler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid equipment id", http.StatusBadRequest)
		return
	}
	executorID, ok := authUserID(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	deleted, err := h.Service.DeleteEquipment(r.Context(), executorID, id)
	if err != nil {
		if errors.Is(err, models.ErrPermissionDenied) {
			http.Error(w, "Equipment belongs to another executor", http.StatusForbidden)
			return
		}
		log.Printf("DeleteEquipment error: %v", err)
		http.Error(w, "Failed to delete equipment", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"deleted": deleted})
}

func (h *EquipmentHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid equipment id", http.StatusBadRequest)
		return
	}
	var req struct {
		IsAvailable bool `json:"is_available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	ok, err := h.Service.ToggleAvailability(r.Context(), id, req.IsAvailable)
	if err != nil {
		log.Printf("ToggleAvailability error: %v", err)
		http.Error(w, "Failed to update availability", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Equipment not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UploadEquipmentPhoto accepts a multipart photo, puts it into object storage
// and saves the resulting URL on the equipment row.
func (h *EquipmentHandler) UploadEquipmentPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid equipment id", http.StatusBadRequest)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Missing photo file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read photo", http.StatusInternalServerError)
		return
	}

	fileName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(header.Filename))
	url, err := h.Storage.UploadFile(data, fileName, "equipment")
	if err != nil {
		log.Printf("UploadEquipmentPhoto error: %v", err)
		http.Error(w, "Failed to upload photo", http.StatusInternalServerError)
		return
	}

	updated, err := h.Service.UpdateEquipment(r.Context(), id, models.EquipmentPatch{PhotoURL: &url})
	if err != nil {
		if errors.Is(err, models.ErrEquipmentNotFound) {
			http.Error(w, "Equipment not found", http.StatusNotFound)
			return
		}
		log.Printf("UploadEquipmentPhoto error: %v", err)
		http.Error(w, "Failed to save photo url", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(updated)
}
