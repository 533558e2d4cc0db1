package models

import (
	"time"
)

type Review struct {
	ID         int       `json:"id"`
	OrderID    string    `json:"order_id"`
	FromUserID int       `json:"from_user_id"`
	ToUserID   int       `json:"to_user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`

	// Joined from users
	AuthorUsername *string `json:"author_username,omitempty"`
	AuthorFullName *string `json:"author_full_name,omitempty"`
}

// Validate checks the rating bounds.
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
