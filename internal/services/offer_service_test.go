package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gruzBack/internal/models"
)

func activeOrder(orderID string, userID int) models.Order {
	return models.Order{
		OrderID:   orderID,
		UserID:    userID,
		Status:    models.OrderStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestCreateOffer(t *testing.T) {
	users := newFakeUserRepo(
		models.User{ID: 1, Role: models.RoleCustomer},
		models.User{ID: 2, Role: models.RoleExecutor},
	)
	orders := newFakeOrderRepo(activeOrder("ORD-1", 1))
	offers := newFakeOfferRepo()
	notifier := &recordingNotifier{}
	svc := &OfferService{OfferRepo: offers, OrderRepo: orders, UserRepo: users, Notifier: notifier}

	offer, err := svc.CreateOffer(context.Background(), models.CreateOfferRequest{
		OrderID:    "ORD-1",
		ExecutorID: 2,
		Price:      7000,
		Comment:    "Готов выехать сегодня",
	})
	if err != nil {
		t.Fatalf("CreateOffer: %v", err)
	}
	if offer.Price != 7000 {
		t.Errorf("price = %d, want 7000", offer.Price)
	}
	if len(notifier.newOffers) != 1 {
		t.Errorf("notifier calls = %d, want 1", len(notifier.newOffers))
	}
}

func TestCreateOfferUpsert(t *testing.T) {
	users := newFakeUserRepo(
		models.User{ID: 1, Role: models.RoleCustomer},
		models.User{ID: 2, Role: models.RoleExecutor},
	)
	orders := newFakeOrderRepo(activeOrder("ORD-1", 1))
	offers := newFakeOfferRepo()
	svc := &OfferService{OfferRepo: offers, OrderRepo: orders, UserRepo: users}

	first, err := svc.CreateOffer(context.Background(), models.CreateOfferRequest{OrderID: "ORD-1", ExecutorID: 2, Price: 7000})
	if err != nil {
		t.Fatalf("first CreateOffer: %v", err)
	}
	second, err := svc.CreateOffer(context.Background(), models.CreateOfferRequest{OrderID: "ORD-1", ExecutorID: 2, Price: 6500})
	if err != nil {
		t.Fatalf("second CreateOffer: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeat offer got id %d, want existing id %d", second.ID, first.ID)
	}
	if second.Price != 6500 {
		t.Errorf("price = %d, want 6500", second.Price)
	}
	count, _ := offers.CountOffersForOrder(context.Background(), "ORD-1")
	if count != 1 {
		t.Errorf("offers stored = %d, want 1", count)
	}
}

func TestCreateOfferValidation(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 1, Role: models.RoleCustomer})
	inactive := activeOrder("ORD-2", 1)
	inactive.Status = models.OrderStatusCancelled
	orders := newFakeOrderRepo(activeOrder("ORD-1", 1), inactive)
	svc := &OfferService{OfferRepo: newFakeOfferRepo(), OrderRepo: orders, UserRepo: users}

	cases := []struct {
		name string
		req  models.CreateOfferRequest
		want error
	}{
		{"zero price", models.CreateOfferRequest{OrderID: "ORD-1", ExecutorID: 2, Price: 0}, models.ErrInvalidPrice},
		{"missing order", models.CreateOfferRequest{OrderID: "ORD-9", ExecutorID: 2, Price: 100}, models.ErrOrderNotFound},
		{"inactive order", models.CreateOfferRequest{OrderID: "ORD-2", ExecutorID: 2, Price: 100}, models.ErrOrderInactive},
		{"unknown executor", models.CreateOfferRequest{OrderID: "ORD-1", ExecutorID: 42, Price: 100}, models.ErrUserNotFound},
		{"own order", models.CreateOfferRequest{OrderID: "ORD-1", ExecutorID: 1, Price: 100}, models.ErrSelfOffer},
	}
	for _, tc := range cases {
		if _, err := svc.CreateOffer(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestSelectOffer(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 1, Role: models.RoleCustomer})
	orders := newFakeOrderRepo(activeOrder("ORD-1", 1))
	notifier := &recordingNotifier{}
	svc := &OfferService{OfferRepo: newFakeOfferRepo(), OrderRepo: orders, UserRepo: users, Notifier: notifier}

	if err := svc.SelectOffer(context.Background(), "ORD-1", 10, 1); err != nil {
		t.Fatalf("SelectOffer: %v", err)
	}
	if orders.selectedOffer != 10 {
		t.Errorf("selected offer = %d, want 10", orders.selectedOffer)
	}
	if len(notifier.selected) != 1 || notifier.selected[0] != 777 {
		t.Errorf("notifier selected = %v, want [777]", notifier.selected)
	}
}

func TestSelectOfferForeignOrder(t *testing.T) {
	orders := newFakeOrderRepo(activeOrder("ORD-1", 1))
	svc := &OfferService{OfferRepo: newFakeOfferRepo(), OrderRepo: orders, UserRepo: newFakeUserRepo()}

	err := svc.SelectOffer(context.Background(), "ORD-1", 10, 2)
	if !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if orders.selectedOffer != 0 {
		t.Error("selection reached the repository despite permission error")
	}
}

func TestGetOffersForOrderWithoutCustomerLocation(t *testing.T) {
	users := newFakeUserRepo(
		models.User{ID: 1, Role: models.RoleCustomer},
		models.User{ID: 2, Role: models.RoleExecutor},
	)
	orders := newFakeOrderRepo(activeOrder("ORD-1", 1))
	offers := newFakeOfferRepo()
	locations := &fakeLocationRepo{locations: map[int]models.UserLocation{}}
	svc := &OfferService{OfferRepo: offers, OrderRepo: orders, UserRepo: users, LocationRepo: locations}

	if _, err := svc.CreateOffer(context.Background(), models.CreateOfferRequest{OrderID: "ORD-1", ExecutorID: 2, Price: 100}); err != nil {
		t.Fatalf("CreateOffer: %v", err)
	}

	// A customer who never shared a location must still see the offers.
	got, err := svc.GetOffersForOrder(context.Background(), "ORD-1", true)
	if err != nil {
		t.Fatalf("GetOffersForOrder: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("offers = %d, want 1", len(got))
	}
	if got[0].DistanceKm != nil {
		t.Error("distance set without customer coordinates")
	}
}
