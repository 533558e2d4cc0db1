package models

import (
	"time"
)

type UserLocation struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Address     *string   `json:"address,omitempty"`
	City        *string   `json:"city,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}
