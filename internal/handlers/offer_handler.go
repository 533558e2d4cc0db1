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

type OfferHandler struct {
	Service *services.OfferService
}

func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	offer, err := h.Service.CreateOffer(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidPrice):
			http.Error(w, "Price must be positive", http.StatusBadRequest)
		case errors.Is(err, models.ErrOrderNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrOrderInactive):
			http.Error(w, "Order no longer accepts offers", http.StatusConflict)
		case errors.Is(err, models.ErrUserNotFound):
			http.Error(w, "Executor not found", http.StatusNotFound)
		case errors.Is(err, models.ErrSelfOffer):
			http.Error(w, "Cannot offer on your own order", http.StatusConflict)
		default:
			log.Printf("CreateOffer error: %v", err)
			http.Error(w, "Failed to create offer", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(offer)
}

// GetOffersForOrder lists offers for an order, price ascending. With
// include_executor_info=true each offer carries the executor card and, when
// both sides shared coordinates, the distance between them.
func (h *OfferHandler) GetOffersForOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get(":order_id")
	if orderID == "" {
		http.Error(w, "Missing order id", http.StatusBadRequest)
		return
	}
	includeExecutorInfo := r.URL.Query().Get("include_executor_info") == "true"

	offers, err := h.Service.GetOffersForOrder(r.Context(), orderID, includeExecutorInfo)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get offers", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(offers)
}

func (h *OfferHandler) GetExecutorOffers(w http.ResponseWriter, r *http.Request) {
	executorID, err := strconv.Atoi(r.URL.Query().Get(":executor_id"))
	if err != nil {
		http.Error(w, "Invalid executor id", http.StatusBadRequest)
		return
	}
	offers, err := h.Service.GetExecutorOffers(r.Context(), executorID)
	if err != nil {
		http.Error(w, "Failed to get offers", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(offers)
}

func (h *OfferHandler) GetOrderOffersCount(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get(":order_id")
	if orderID == "" {
		http.Error(w, "Missing order id", http.StatusBadRequest)
		return
	}
	count, err := h.Service.GetOrderOffersCount(r.Context(), orderID)
	if err != nil {
		http.Error(w, "Failed to count offers", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int{"count": count})
}

func (h *OfferHandler) SelectOffer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := authUserID(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	var req models.SelectOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.SelectOffer(r.Context(), req.OrderID, req.OfferID, customerID); err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrOfferNotFound):
			http.Error(w, "Offer not found", http.StatusNotFound)
		case errors.Is(err, models.ErrPermissionDenied):
			http.Error(w, "Only the order owner can select an offer", http.StatusForbidden)
		case errors.Is(err, models.ErrForbiddenTransition):
			http.Error(w, "Order no longer accepts selection", http.StatusConflict)
		default:
			log.Printf("SelectOffer error: %v", err)
			http.Error(w, "Failed to select offer", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
