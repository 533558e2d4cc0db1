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

type OrderHandler struct {
	Service *services.OrderService
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.UserID == 0 || req.ServiceType == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	order, err := h.Service.CreateOrder(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidPrice):
			http.Error(w, "Price cannot be negative", http.StatusBadRequest)
		case errors.Is(err, models.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			log.Printf("CreateOrder error: %v", err)
			http.Error(w, "Failed to create order", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get(":order_id")
	if orderID == "" {
		http.Error(w, "Missing order id", http.StatusBadRequest)
		return
	}
	details, err := h.Service.GetOrderDetails(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get order", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(details)
}

func (h *OrderHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get(":user_id"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	orders, err := h.Service.GetUserOrders(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get orders", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(orders)
}

// GetActiveOrders returns the open feed. exclude_user_id hides the caller's
// own orders from the listing.
func (h *OrderHandler) GetActiveOrders(w http.ResponseWriter, r *http.Request) {
	var excludeUserID *int
	if raw := r.URL.Query().Get("exclude_user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid exclude_user_id", http.StatusBadRequest)
			return
		}
		excludeUserID = &id
	}
	orders, err := h.Service.GetActiveOrders(r.Context(), excludeUserID)
	if err != nil {
		http.Error(w, "Failed to get orders", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(orders)
}

// GetFilteredOrders returns the active feed narrowed by the executor's saved
// filter settings.
func (h *OrderHandler) GetFilteredOrders(w http.ResponseWriter, r *http.Request) {
	executorID, err := strconv.Atoi(r.URL.Query().Get(":executor_id"))
	if err != nil {
		http.Error(w, "Invalid executor id", http.StatusBadRequest)
		return
	}
	orders, err := h.Service.GetFilteredOrdersForExecutor(r.Context(), executorID)
	if err != nil {
		http.Error(w, "Failed to get orders", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(orders)
}

func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get(":order_id")
	if orderID == "" {
		http.Error(w, "Missing order id", http.StatusBadRequest)
		return
	}
	actorID, ok := authUserID(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateOrderStatus(r.Context(), orderID, actorID, req.Status); err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrPermissionDenied):
			http.Error(w, "Only the order owner can change its status", http.StatusForbidden)
		case errors.Is(err, models.ErrForbiddenTransition):
			http.Error(w, "Status transition not allowed", http.StatusConflict)
		default:
			log.Printf("UpdateOrderStatus error: %v", err)
			http.Error(w, "Failed to update order status", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
