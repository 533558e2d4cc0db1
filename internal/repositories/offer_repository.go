package repositories

import (
	"context"
	"database/sql"
	"errors"

	"gruzBack/internal/models"
)

type OfferRepository struct {
	DB *sql.DB
}

// UpsertOffer stores the executor's proposal for an order. The unique key on
// (order_id, executor_id) makes a repeated submission update the existing row,
// so two near-simultaneous submissions can never produce a duplicate.
func (r *OfferRepository) UpsertOffer(ctx context.Context, offer models.Offer) (models.Offer, error) {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO offers (order_id, executor_id, price, comment, is_selected, created_at)
		VALUES (?, ?, ?, ?, 0, NOW())
		ON DUPLICATE KEY UPDATE price = VALUES(price), comment = VALUES(comment), updated_at = NOW()
	`, offer.OrderID, offer.ExecutorID, offer.Price, offer.Comment)
	if err != nil {
		return models.Offer{}, err
	}
	return r.GetOfferByOrderAndExecutor(ctx, offer.OrderID, offer.ExecutorID)
}

func (r *OfferRepository) GetOffer(ctx context.Context, id int) (models.Offer, error) {
	var o models.Offer
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, order_id, executor_id, price, comment, is_selected, created_at, updated_at
		FROM offers WHERE id = ?
	`, id).Scan(&o.ID, &o.OrderID, &o.ExecutorID, &o.Price, &o.Comment, &o.IsSelected, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Offer{}, models.ErrOfferNotFound
	}
	if err != nil {
		return models.Offer{}, err
	}
	return o, nil
}

func (r *OfferRepository) GetOfferByOrderAndExecutor(ctx context.Context, orderID string, executorID int) (models.Offer, error) {
	var o models.Offer
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, order_id, executor_id, price, comment, is_selected, created_at, updated_at
		FROM offers WHERE order_id = ? AND executor_id = ?
	`, orderID, executorID).Scan(&o.ID, &o.OrderID, &o.ExecutorID, &o.Price, &o.Comment, &o.IsSelected, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Offer{}, models.ErrOfferNotFound
	}
	if err != nil {
		return models.Offer{}, err
	}
	return o, nil
}

func (r *OfferRepository) GetOffersForOrder(ctx context.Context, orderID string) ([]models.Offer, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, executor_id, price, comment, is_selected, created_at, updated_at
		FROM offers WHERE order_id = ?
		ORDER BY price ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := []models.Offer{}
	for rows.Next() {
		var o models.Offer
		if err := rows.Scan(&o.ID, &o.OrderID, &o.ExecutorID, &o.Price, &o.Comment, &o.IsSelected, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// GetOffersForOrderWithExecutors joins each offer with the executor card the
// customer sees, cheapest first. When the customer's coordinates are passed,
// each card is annotated with the executor's distance.
func (r *OfferRepository) GetOffersForOrderWithExecutors(ctx context.Context, orderID string, customerLat, customerLon *float64) ([]models.OfferWithExecutor, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT f.id, f.order_id, f.executor_id, f.price, f.comment, f.is_selected, f.created_at, f.updated_at,
		       u.id, COALESCE(u.username, ''), COALESCE(u.full_name, ''), u.role, u.rating, u.created_at,
		       ep.company_name, ep.experience_years, ep.is_verified, ep.latitude, ep.longitude
		FROM offers f
		LEFT JOIN users u ON f.executor_id = u.id
		LEFT JOIN executor_profiles ep ON ep.user_id = f.executor_id
		WHERE f.order_id = ?
		ORDER BY f.price ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.OfferWithExecutor{}
	for rows.Next() {
		var item models.OfferWithExecutor
		var expYears *int
		var verified *bool
		var company *string
		var lat, lon *float64
		if err := rows.Scan(
			&item.Offer.ID, &item.Offer.OrderID, &item.Offer.ExecutorID, &item.Offer.Price,
			&item.Offer.Comment, &item.Offer.IsSelected, &item.Offer.CreatedAt, &item.Offer.UpdatedAt,
			&item.Executor.ID, &item.Executor.Username, &item.Executor.FullName,
			&item.Executor.Role, &item.Executor.Rating, &item.Executor.CreatedAt,
			&company, &expYears, &verified, &lat, &lon,
		); err != nil {
			return nil, err
		}
		if expYears != nil {
			profile := models.ExecutorProfile{
				UserID:          item.Offer.ExecutorID,
				CompanyName:     company,
				ExperienceYears: *expYears,
				Latitude:        lat,
				Longitude:       lon,
			}
			if verified != nil {
				profile.IsVerified = *verified
			}
			item.ExecutorProfile = &profile
			item.DistanceKm = calculateDistanceKm(customerLat, customerLon, lat, lon)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *OfferRepository) GetOffersByExecutor(ctx context.Context, executorID int) ([]models.OfferWithOrder, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT f.id, f.order_id, f.executor_id, f.price, f.comment, f.is_selected, f.created_at, f.updated_at,
		       o.order_id, o.user_id, o.service_type, o.description, o.address, o.desired_price,
		       o.status, o.selected_executor_id, o.created_at, o.expires_at
		FROM offers f
		JOIN orders o ON f.order_id = o.order_id
		WHERE f.executor_id = ?
		ORDER BY f.created_at DESC
	`, executorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.OfferWithOrder{}
	for rows.Next() {
		var item models.OfferWithOrder
		if err := rows.Scan(
			&item.Offer.ID, &item.Offer.OrderID, &item.Offer.ExecutorID, &item.Offer.Price,
			&item.Offer.Comment, &item.Offer.IsSelected, &item.Offer.CreatedAt, &item.Offer.UpdatedAt,
			&item.Order.OrderID, &item.Order.UserID, &item.Order.ServiceType, &item.Order.Description,
			&item.Order.Address, &item.Order.DesiredPrice, &item.Order.Status,
			&item.Order.SelectedExecutorID, &item.Order.CreatedAt, &item.Order.ExpiresAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *OfferRepository) CountOffersForOrder(ctx context.Context, orderID string) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM offers WHERE order_id = ?`, orderID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
