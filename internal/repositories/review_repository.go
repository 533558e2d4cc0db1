package repositories

import (
	"context"
	"database/sql"

	"gruzBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

// CreateReview inserts the review and overwrites the target user's rating with
// the new value inside one transaction. The overwrite (rather than a running
// average) matches the long-standing production behavior.
func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var result sql.Result
	result, err = tx.ExecContext(ctx, `
		INSERT INTO reviews (order_id, from_user_id, to_user_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`, rev.OrderID, rev.FromUserID, rev.ToUserID, rev.Rating, rev.Comment)
	if err != nil {
		return models.Review{}, err
	}

	var id int64
	id, err = result.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE users SET rating = ? WHERE id = ?`, rev.Rating, rev.ToUserID)
	if err != nil {
		return models.Review{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Review{}, err
	}
	rev.ID = int(id)
	return rev, nil
}

func (r *ReviewRepository) GetUserReviews(ctx context.Context, userID int) ([]models.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.order_id, r.from_user_id, r.to_user_id, r.rating, r.comment, r.created_at,
		       u.username, u.full_name
		FROM reviews r
		LEFT JOIN users u ON r.from_user_id = u.id
		WHERE r.to_user_id = ?
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.OrderID, &rev.FromUserID, &rev.ToUserID, &rev.Rating,
			&rev.Comment, &rev.CreatedAt, &rev.AuthorUsername, &rev.AuthorFullName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// GetAverageRating is kept for reporting; the live user rating is the
// last-review overwrite above.
func (r *ReviewRepository) GetAverageRating(ctx context.Context, userID int) float64 {
	return getAverageRating(ctx, r.DB, "reviews", "to_user_id", userID)
}
