package models

import (
	"time"
)

// Order statuses. completed, cancelled and expired are terminal.
const (
	OrderStatusActive     = "active"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusExpired    = "expired"
)

var orderTransitions = map[string]map[string]struct{}{
	OrderStatusActive: {
		OrderStatusInProgress: {},
		OrderStatusCancelled:  {},
		OrderStatusExpired:    {},
	},
	OrderStatusInProgress: {
		OrderStatusCompleted: {},
		OrderStatusCancelled: {},
	},
}

// CanTransitionOrder returns true when the lifecycle allows moving from
// current to next status. Re-setting the current status is a no-op.
func CanTransitionOrder(current, next string) bool {
	if current == next {
		return true
	}
	allowed, ok := orderTransitions[current]
	if !ok {
		return false
	}
	_, ok = allowed[next]
	return ok
}

type Order struct {
	OrderID            string    `json:"order_id"`
	UserID             int       `json:"user_id"`
	ServiceType        string    `json:"service_type"`
	Description        string    `json:"description"`
	Address            string    `json:"address"`
	DesiredPrice       *int      `json:"desired_price,omitempty"`
	Status             string    `json:"status"`
	SelectedExecutorID *int      `json:"selected_executor_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	ExpiresAt          time.Time `json:"expires_at"`

	// Joined from users
	CustomerUsername *string `json:"customer_username,omitempty"`
	CustomerFullName *string `json:"customer_full_name,omitempty"`
}

// IsActive reports whether the order still accepts offers.
func (o *Order) IsActive() bool {
	if o.Status != OrderStatusActive {
		return false
	}
	if !o.ExpiresAt.IsZero() && o.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}

type CreateOrderRequest struct {
	UserID       int    `json:"user_id"`
	ServiceType  string `json:"service_type"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	DesiredPrice *int   `json:"desired_price,omitempty"`
}

type OrderDetails struct {
	Order    Order `json:"order"`
	Customer User  `json:"customer"`
	IsActive bool  `json:"is_active"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
