package services

import (
	"context"

	"gruzBack/internal/models"
)

// ReviewRepo is the persistence surface the review service needs.
type ReviewRepo interface {
	CreateReview(ctx context.Context, rev models.Review) (models.Review, error)
	GetUserReviews(ctx context.Context, userID int) ([]models.Review, error)
}

// ReviewOrderRepo is the slice of the order repository reviews depend on.
type ReviewOrderRepo interface {
	GetOrder(ctx context.Context, orderID string) (models.Order, error)
}

type ReviewService struct {
	ReviewRepo ReviewRepo
	OrderRepo  ReviewOrderRepo
	UserRepo   UserRepo
}

func (s *ReviewService) AddReview(ctx context.Context, rev models.Review) (models.Review, error) {
	if err := rev.Validate(); err != nil {
		return models.Review{}, err
	}
	if _, err := s.OrderRepo.GetOrder(ctx, rev.OrderID); err != nil {
		return models.Review{}, err
	}
	if _, err := s.UserRepo.GetUser(ctx, rev.ToUserID); err != nil {
		return models.Review{}, err
	}
	return s.ReviewRepo.CreateReview(ctx, rev)
}

func (s *ReviewService) GetUserReviews(ctx context.Context, userID int) ([]models.Review, error) {
	return s.ReviewRepo.GetUserReviews(ctx, userID)
}
