package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gruzBack/internal/models"
)

type OrderRepository struct {
	DB *sql.DB
}

func (r *OrderRepository) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO orders (order_id, user_id, service_type, description, address, desired_price, status, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), ?)
	`, o.OrderID, o.UserID, o.ServiceType, o.Description, o.Address, o.DesiredPrice, o.Status, o.ExpiresAt)
	if err != nil {
		return models.Order{}, err
	}
	return r.GetOrder(ctx, o.OrderID)
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	var o models.Order
	err := r.DB.QueryRowContext(ctx, `
		SELECT order_id, user_id, service_type, description, address, desired_price,
		       status, selected_executor_id, created_at, expires_at
		FROM orders WHERE order_id = ?
	`, orderID).Scan(&o.OrderID, &o.UserID, &o.ServiceType, &o.Description, &o.Address,
		&o.DesiredPrice, &o.Status, &o.SelectedExecutorID, &o.CreatedAt, &o.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, models.ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *OrderRepository) GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, user_id, service_type, description, address, desired_price,
		       status, selected_executor_id, created_at, expires_at
		FROM orders WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows, false)
}

func (r *OrderRepository) GetActiveOrders(ctx context.Context, excludeUserID *int) ([]models.Order, error) {
	query := `
		SELECT o.order_id, o.user_id, o.service_type, o.description, o.address, o.desired_price,
		       o.status, o.selected_executor_id, o.created_at, o.expires_at,
		       u.username, u.full_name
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		WHERE o.status = ? AND o.expires_at > NOW()
	`
	params := []interface{}{models.OrderStatusActive}

	if excludeUserID != nil {
		query += " AND o.user_id != ?"
		params = append(params, *excludeUserID)
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows, true)
}

// GetFilteredOrders narrows active orders by the executor's price bounds and
// service filter. Orders with no desired price always pass the price check.
// Stored geodata is deliberately not part of this predicate.
func (r *OrderRepository) GetFilteredOrders(ctx context.Context, executorID int, minPrice, maxPrice *int, serviceFilter *string) ([]models.Order, error) {
	var conditions []string
	query := `
		SELECT o.order_id, o.user_id, o.service_type, o.description, o.address, o.desired_price,
		       o.status, o.selected_executor_id, o.created_at, o.expires_at,
		       u.username, u.full_name
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		WHERE o.status = ? AND o.expires_at > NOW() AND o.user_id != ?
	`
	params := []interface{}{models.OrderStatusActive, executorID}

	if minPrice != nil {
		conditions = append(conditions, "(o.desired_price IS NULL OR o.desired_price >= ?)")
		params = append(params, *minPrice)
	}
	if maxPrice != nil {
		conditions = append(conditions, "(o.desired_price IS NULL OR o.desired_price <= ?)")
		params = append(params, *maxPrice)
	}
	if serviceFilter != nil && *serviceFilter != "" && *serviceFilter != "all" {
		conditions = append(conditions, "o.service_type = ?")
		params = append(params, *serviceFilter)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows, true)
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE orders SET status = ? WHERE order_id = ?`, status, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var marker int
		if err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE order_id = ?`, orderID).Scan(&marker); errors.Is(err, sql.ErrNoRows) {
			return models.ErrOrderNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SelectOffer performs the whole selection in one transaction: the order row is
// locked, the chosen offer is flagged, every other offer of the order is
// cleared, and the order moves to in_progress with the executor recorded.
// Returns the winning executor id.
func (r *OrderRepository) SelectOffer(ctx context.Context, orderID string, offerID int) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE order_id = ? FOR UPDATE`, orderID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		err = models.ErrOrderNotFound
		return 0, err
	}
	if err != nil {
		return 0, err
	}
	if !models.CanTransitionOrder(status, models.OrderStatusInProgress) {
		err = models.ErrForbiddenTransition
		return 0, err
	}

	var executorID int
	err = tx.QueryRowContext(ctx, `SELECT executor_id FROM offers WHERE id = ? AND order_id = ?`, offerID, orderID).Scan(&executorID)
	if errors.Is(err, sql.ErrNoRows) {
		err = models.ErrOfferNotFound
		return 0, err
	}
	if err != nil {
		return 0, err
	}

	if _, err = tx.ExecContext(ctx, `UPDATE offers SET is_selected = 0 WHERE order_id = ?`, orderID); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE offers SET is_selected = 1 WHERE id = ?`, offerID); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE orders SET status = ?, selected_executor_id = ? WHERE order_id = ?`,
		models.OrderStatusInProgress, executorID, orderID); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return executorID, nil
}

func scanOrders(rows *sql.Rows, withCustomer bool) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var err error
		if withCustomer {
			err = rows.Scan(&o.OrderID, &o.UserID, &o.ServiceType, &o.Description, &o.Address,
				&o.DesiredPrice, &o.Status, &o.SelectedExecutorID, &o.CreatedAt, &o.ExpiresAt,
				&o.CustomerUsername, &o.CustomerFullName)
		} else {
			err = rows.Scan(&o.OrderID, &o.UserID, &o.ServiceType, &o.Description, &o.Address,
				&o.DesiredPrice, &o.Status, &o.SelectedExecutorID, &o.CreatedAt, &o.ExpiresAt)
		}
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
