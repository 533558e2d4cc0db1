package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"gruzBack/internal/models"
)

func TestCreateOrder(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 1, Role: models.RoleCustomer})
	orders := newFakeOrderRepo()
	svc := &OrderService{OrderRepo: orders, UserRepo: users}

	price := 5000
	order, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:       1,
		ServiceType:  "gazelle",
		Description:  "Перевозка мебели",
		Address:      "Алматы, Абая 10",
		DesiredPrice: &price,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Status != models.OrderStatusActive {
		t.Errorf("status = %q, want %q", order.Status, models.OrderStatusActive)
	}
	if order.ExpiresAt.Before(time.Now().Add(6 * 24 * time.Hour)) {
		t.Errorf("expires_at %v is sooner than a week out", order.ExpiresAt)
	}
	if _, ok := orders.orders[order.OrderID]; !ok {
		t.Error("order was not persisted")
	}
}

func TestCreateOrderNegativePrice(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 1})
	svc := &OrderService{OrderRepo: newFakeOrderRepo(), UserRepo: users}

	price := -100
	_, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{UserID: 1, DesiredPrice: &price})
	if !errors.Is(err, models.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
}

func TestCreateOrderUnknownUser(t *testing.T) {
	svc := &OrderService{OrderRepo: newFakeOrderRepo(), UserRepo: newFakeUserRepo()}

	_, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{UserID: 99})
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestGenerateOrderIDFormat(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 0, 0, time.UTC)
	id := generateOrderID(now)

	want := regexp.MustCompile(`^ORD-2503141509-[A-Z0-9]{4}$`)
	if !want.MatchString(id) {
		t.Errorf("id %q does not match %s", id, want)
	}
}

func TestUpdateOrderStatusPermission(t *testing.T) {
	orders := newFakeOrderRepo(models.Order{
		OrderID:   "ORD-1",
		UserID:    1,
		Status:    models.OrderStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	svc := &OrderService{OrderRepo: orders, UserRepo: newFakeUserRepo()}

	err := svc.UpdateOrderStatus(context.Background(), "ORD-1", 2, models.OrderStatusCancelled)
	if !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if len(orders.statusUpdates) != 0 {
		t.Error("status was updated despite permission error")
	}
}

func TestUpdateOrderStatusForbiddenTransition(t *testing.T) {
	orders := newFakeOrderRepo(models.Order{
		OrderID: "ORD-1",
		UserID:  1,
		Status:  models.OrderStatusCompleted,
	})
	svc := &OrderService{OrderRepo: orders, UserRepo: newFakeUserRepo()}

	err := svc.UpdateOrderStatus(context.Background(), "ORD-1", 1, models.OrderStatusActive)
	if !errors.Is(err, models.ErrForbiddenTransition) {
		t.Fatalf("err = %v, want ErrForbiddenTransition", err)
	}
}

func TestUpdateOrderStatusExpiredOrder(t *testing.T) {
	// Still "active" in the database, but past its deadline. Starting work on
	// it must be refused.
	orders := newFakeOrderRepo(models.Order{
		OrderID:   "ORD-1",
		UserID:    1,
		Status:    models.OrderStatusActive,
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	svc := &OrderService{OrderRepo: orders, UserRepo: newFakeUserRepo()}

	err := svc.UpdateOrderStatus(context.Background(), "ORD-1", 1, models.OrderStatusInProgress)
	if !errors.Is(err, models.ErrForbiddenTransition) {
		t.Fatalf("err = %v, want ErrForbiddenTransition", err)
	}
}

func TestUpdateOrderStatusSameStatusNoop(t *testing.T) {
	orders := newFakeOrderRepo(models.Order{
		OrderID:   "ORD-1",
		UserID:    1,
		Status:    models.OrderStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	svc := &OrderService{OrderRepo: orders, UserRepo: newFakeUserRepo()}

	if err := svc.UpdateOrderStatus(context.Background(), "ORD-1", 1, models.OrderStatusActive); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if len(orders.statusUpdates) != 0 {
		t.Error("no-op transition hit the repository")
	}
}

func TestGetFilteredOrdersWithoutProfile(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 5, Role: models.RoleExecutor})
	orders := newFakeOrderRepo()
	svc := &OrderService{OrderRepo: orders, UserRepo: users}

	got, err := svc.GetFilteredOrdersForExecutor(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetFilteredOrdersForExecutor: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d orders, want none", len(got))
	}
	if len(orders.filterCalls) != 0 {
		t.Error("repository was queried despite missing profile")
	}
}

func TestGetFilteredOrdersPassesProfileBounds(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 5, Role: models.RoleExecutor})
	minPrice, maxPrice := 2000, 30000
	filter := "gazelle"
	users.profiles[5] = models.ExecutorProfile{
		UserID:        5,
		MinPrice:      &minPrice,
		MaxPrice:      &maxPrice,
		ServiceFilter: &filter,
	}
	orders := newFakeOrderRepo()
	svc := &OrderService{OrderRepo: orders, UserRepo: users}

	if _, err := svc.GetFilteredOrdersForExecutor(context.Background(), 5); err != nil {
		t.Fatalf("GetFilteredOrdersForExecutor: %v", err)
	}
	if len(orders.filterCalls) != 1 {
		t.Fatalf("filter calls = %d, want 1", len(orders.filterCalls))
	}
	call := orders.filterCalls[0]
	if call.executorID != 5 || *call.minPrice != 2000 || *call.maxPrice != 30000 || *call.serviceFilter != "gazelle" {
		t.Errorf("unexpected filter call: %+v", call)
	}
}
