package services

import (
	"context"
	"errors"

	"gruzBack/internal/models"
)

// OfferRepo is the persistence surface the offer service needs.
type OfferRepo interface {
	UpsertOffer(ctx context.Context, offer models.Offer) (models.Offer, error)
	GetOffersForOrder(ctx context.Context, orderID string) ([]models.Offer, error)
	GetOffersForOrderWithExecutors(ctx context.Context, orderID string, customerLat, customerLon *float64) ([]models.OfferWithExecutor, error)
	GetOffersByExecutor(ctx context.Context, executorID int) ([]models.OfferWithOrder, error)
	CountOffersForOrder(ctx context.Context, orderID string) (int, error)
}

// OrderSelector is the slice of the order repository the selection path uses.
type OrderSelector interface {
	GetOrder(ctx context.Context, orderID string) (models.Order, error)
	SelectOffer(ctx context.Context, orderID string, offerID int) (int, error)
}

// LocationRepo feeds the display-only distance annotation on offer listings.
type LocationRepo interface {
	GetLocation(ctx context.Context, userID int) (models.UserLocation, error)
}

// OfferNotifier is told about offer events after they are committed.
// Implementations must not block; failures are the implementation's problem.
type OfferNotifier interface {
	NewOffer(order models.Order, offer models.Offer)
	OfferSelected(order models.Order, executorID int)
}

type OfferService struct {
	OfferRepo    OfferRepo
	OrderRepo    OrderSelector
	UserRepo     UserRepo
	LocationRepo LocationRepo
	Notifier     OfferNotifier
}

// CreateOffer validates fail-fast, first violated condition wins. A repeated
// submission by the same executor is an upsert, not an error.
func (s *OfferService) CreateOffer(ctx context.Context, req models.CreateOfferRequest) (models.Offer, error) {
	if req.Price <= 0 {
		return models.Offer{}, models.ErrInvalidPrice
	}

	order, err := s.OrderRepo.GetOrder(ctx, req.OrderID)
	if err != nil {
		return models.Offer{}, err
	}
	if !order.IsActive() {
		return models.Offer{}, models.ErrOrderInactive
	}
	if _, err := s.UserRepo.GetUser(ctx, req.ExecutorID); err != nil {
		return models.Offer{}, err
	}
	if order.UserID == req.ExecutorID {
		return models.Offer{}, models.ErrSelfOffer
	}

	offer, err := s.OfferRepo.UpsertOffer(ctx, models.Offer{
		OrderID:    req.OrderID,
		ExecutorID: req.ExecutorID,
		Price:      req.Price,
		Comment:    req.Comment,
	})
	if err != nil {
		return models.Offer{}, err
	}

	if s.Notifier != nil {
		s.Notifier.NewOffer(order, offer)
	}
	return offer, nil
}

func (s *OfferService) GetOffersForOrder(ctx context.Context, orderID string, includeExecutorInfo bool) ([]models.OfferWithExecutor, error) {
	if !includeExecutorInfo {
		offers, err := s.OfferRepo.GetOffersForOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		result := make([]models.OfferWithExecutor, 0, len(offers))
		for _, o := range offers {
			result = append(result, models.OfferWithExecutor{Offer: o})
		}
		return result, nil
	}

	order, err := s.OrderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var customerLat, customerLon *float64
	if s.LocationRepo != nil {
		loc, err := s.LocationRepo.GetLocation(ctx, order.UserID)
		if err == nil {
			customerLat, customerLon = loc.Latitude, loc.Longitude
		} else if !errors.Is(err, models.ErrLocationNotFound) {
			return nil, err
		}
	}
	return s.OfferRepo.GetOffersForOrderWithExecutors(ctx, orderID, customerLat, customerLon)
}

func (s *OfferService) GetExecutorOffers(ctx context.Context, executorID int) ([]models.OfferWithOrder, error) {
	return s.OfferRepo.GetOffersByExecutor(ctx, executorID)
}

func (s *OfferService) GetOrderOffersCount(ctx context.Context, orderID string) (int, error) {
	return s.OfferRepo.CountOffersForOrder(ctx, orderID)
}

// SelectOffer lets the owning customer pick the winning offer. The repository
// performs the flag flip and the status transition in one transaction.
func (s *OfferService) SelectOffer(ctx context.Context, orderID string, offerID, customerID int) error {
	order, err := s.OrderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != customerID {
		return models.ErrPermissionDenied
	}

	executorID, err := s.OrderRepo.SelectOffer(ctx, orderID, offerID)
	if err != nil {
		return err
	}

	if s.Notifier != nil {
		s.Notifier.OfferSelected(order, executorID)
	}
	return nil
}
