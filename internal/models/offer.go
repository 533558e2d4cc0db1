package models

import (
	"time"
)

type Offer struct {
	ID         int        `json:"id"`
	OrderID    string     `json:"order_id"`
	ExecutorID int        `json:"executor_id"`
	Price      int        `json:"price"`
	Comment    string     `json:"comment"`
	IsSelected bool       `json:"is_selected"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// OfferWithExecutor is an offer enriched with the executor card shown to the
// customer. DistanceKm is filled only when both sides shared coordinates.
type OfferWithExecutor struct {
	Offer           Offer            `json:"offer"`
	Executor        User             `json:"executor"`
	ExecutorProfile *ExecutorProfile `json:"executor_profile,omitempty"`
	DistanceKm      *float64         `json:"distance_km,omitempty"`
}

type OfferWithOrder struct {
	Offer Offer `json:"offer"`
	Order Order `json:"order"`
}

type CreateOfferRequest struct {
	OrderID    string `json:"order_id"`
	ExecutorID int    `json:"executor_id"`
	Price      int    `json:"price"`
	Comment    string `json:"comment"`
}

// SelectOfferRequest names the order and the winning offer. The acting
// customer is taken from the authenticated request, never from the body.
type SelectOfferRequest struct {
	OrderID string `json:"order_id"`
	OfferID int    `json:"offer_id"`
}
