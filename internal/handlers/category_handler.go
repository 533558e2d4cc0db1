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

type CategoryHandler struct {
	Service *services.CategoryService
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	var parentID *int
	if raw := r.URL.Query().Get("parent_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid parent_id", http.StatusBadRequest)
			return
		}
		parentID = &id
	}
	categories, err := h.Service.GetCategories(r.Context(), parentID)
	if err != nil {
		http.Error(w, "Failed to get categories", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(categories)
}

func (h *CategoryHandler) GetCategoryByCode(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get(":code")
	if code == "" {
		http.Error(w, "Missing category code", http.StatusBadRequest)
		return
	}
	category, err := h.Service.GetCategoryByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get category", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(category)
}

func (h *CategoryHandler) AddExecutorCategory(w http.ResponseWriter, r *http.Request) {
	executorID, err := strconv.Atoi(r.URL.Query().Get(":executor_id"))
	if err != nil {
		http.Error(w, "Invalid executor id", http.StatusBadRequest)
		return
	}
	var req struct {
		CategoryID int `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.AddExecutorCategory(r.Context(), executorID, req.CategoryID); err != nil {
		log.Printf("AddExecutorCategory error: %v", err)
		http.Error(w, "Failed to add category", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *CategoryHandler) GetExecutorCategories(w http.ResponseWriter, r *http.Request) {
	executorID, err := strconv.Atoi(r.URL.Query().Get(":executor_id"))
	if err != nil {
		http.Error(w, "Invalid executor id", http.StatusBadRequest)
		return
	}
	categories, err := h.Service.GetExecutorCategories(r.Context(), executorID)
	if err != nil {
		http.Error(w, "Failed to get categories", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(categories)
}
