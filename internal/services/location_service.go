package services

import (
	"context"

	"gruzBack/internal/models"
)

// LocationStore is the persistence surface the location service needs.
type LocationStore interface {
	UpsertLocation(ctx context.Context, loc models.UserLocation) error
	GetLocation(ctx context.Context, userID int) (models.UserLocation, error)
}

type LocationService struct {
	LocationRepo LocationStore
}

func (s *LocationService) UpdateUserLocation(ctx context.Context, loc models.UserLocation) error {
	return s.LocationRepo.UpsertLocation(ctx, loc)
}

func (s *LocationService) GetUserLocation(ctx context.Context, userID int) (models.UserLocation, error) {
	return s.LocationRepo.GetLocation(ctx, userID)
}
