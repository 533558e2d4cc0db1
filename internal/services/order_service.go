package services

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"gruzBack/internal/models"
)

// OrderRepo is the persistence surface the order service needs.
type OrderRepo interface {
	CreateOrder(ctx context.Context, o models.Order) (models.Order, error)
	GetOrder(ctx context.Context, orderID string) (models.Order, error)
	GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error)
	GetActiveOrders(ctx context.Context, excludeUserID *int) ([]models.Order, error)
	GetFilteredOrders(ctx context.Context, executorID int, minPrice, maxPrice *int, serviceFilter *string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
}

type OrderService struct {
	OrderRepo OrderRepo
	UserRepo  UserRepo
}

const orderTTL = 7 * 24 * time.Hour

const orderIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	if req.DesiredPrice != nil && *req.DesiredPrice < 0 {
		return models.Order{}, models.ErrInvalidPrice
	}
	if _, err := s.UserRepo.GetUser(ctx, req.UserID); err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		OrderID:      generateOrderID(time.Now()),
		UserID:       req.UserID,
		ServiceType:  req.ServiceType,
		Description:  req.Description,
		Address:      req.Address,
		DesiredPrice: req.DesiredPrice,
		Status:       models.OrderStatusActive,
		ExpiresAt:    time.Now().Add(orderTTL),
	}
	return s.OrderRepo.CreateOrder(ctx, order)
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID int) ([]models.Order, error) {
	return s.OrderRepo.GetOrdersByUser(ctx, userID)
}

func (s *OrderService) GetActiveOrders(ctx context.Context, excludeUserID *int) ([]models.Order, error) {
	return s.OrderRepo.GetActiveOrders(ctx, excludeUserID)
}

func (s *OrderService) GetOrderDetails(ctx context.Context, orderID string) (models.OrderDetails, error) {
	order, err := s.OrderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return models.OrderDetails{}, err
	}
	customer, err := s.UserRepo.GetUser(ctx, order.UserID)
	if err != nil {
		return models.OrderDetails{}, err
	}
	return models.OrderDetails{
		Order:    order,
		Customer: customer,
		IsActive: order.IsActive(),
	}, nil
}

// GetFilteredOrdersForExecutor narrows the active feed by the executor's price
// bounds and service filter. Executors without a profile see nothing.
// The profile's stored coordinates and work radius are not part of the
// predicate.
func (s *OrderService) GetFilteredOrdersForExecutor(ctx context.Context, executorID int) ([]models.Order, error) {
	profile, err := s.UserRepo.GetExecutorProfile(ctx, executorID)
	if errors.Is(err, models.ErrProfileNotFound) {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.OrderRepo.GetFilteredOrders(ctx, executorID, profile.MinPrice, profile.MaxPrice, profile.ServiceFilter)
}

// UpdateOrderStatus lets the owning customer move the order along its
// lifecycle. Terminal states cannot be left.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, actorID int, next string) error {
	order, err := s.OrderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != actorID {
		return models.ErrPermissionDenied
	}

	current := order.Status
	if current == models.OrderStatusActive && !order.IsActive() {
		current = models.OrderStatusExpired
	}
	if !models.CanTransitionOrder(current, next) {
		return models.ErrForbiddenTransition
	}
	if current == next {
		return nil
	}
	return s.OrderRepo.UpdateOrderStatus(ctx, orderID, next)
}

// generateOrderID builds the human-readable id: a minute-resolution timestamp
// prefix plus a short random suffix. Collisions are treated as negligible;
// the primary key turns the theoretical one into an insert error.
func generateOrderID(now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderIDCharset[rand.Intn(len(orderIDCharset))]
	}
	return "ORD-" + now.Format("0601021504") + "-" + string(suffix)
}
