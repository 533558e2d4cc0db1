package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"gruzBack/internal/models"
)

// CategoryRepo is the persistence surface the category service needs.
type CategoryRepo interface {
	GetCategories(ctx context.Context, parentID *int) ([]models.ServiceCategory, error)
	GetCategoryByCode(ctx context.Context, code string) (models.ServiceCategory, error)
	AddExecutorCategory(ctx context.Context, executorID, categoryID int) error
	GetExecutorCategories(ctx context.Context, executorID int) ([]models.ServiceCategory, error)
}

type CategoryService struct {
	CategoryRepo CategoryRepo
	Cache        *redis.Client
}

const categoryCacheTTL = 10 * time.Minute

// GetCategories serves the catalog through a read-through cache. Any cache
// trouble degrades to the database.
func (s *CategoryService) GetCategories(ctx context.Context, parentID *int) ([]models.ServiceCategory, error) {
	key := "categories:root"
	if parentID != nil {
		key = fmt.Sprintf("categories:parent:%d", *parentID)
	}

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, key).Result()
		if err == nil {
			var categories []models.ServiceCategory
			if err := json.Unmarshal([]byte(cached), &categories); err == nil {
				return categories, nil
			}
		}
	}

	categories, err := s.CategoryRepo.GetCategories(ctx, parentID)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.Cache.Set(ctx, key, data, categoryCacheTTL).Err(); err != nil {
				log.Printf("category cache set failed: %v", err)
			}
		}
	}
	return categories, nil
}

func (s *CategoryService) GetCategoryByCode(ctx context.Context, code string) (models.ServiceCategory, error) {
	return s.CategoryRepo.GetCategoryByCode(ctx, code)
}

func (s *CategoryService) AddExecutorCategory(ctx context.Context, executorID, categoryID int) error {
	return s.CategoryRepo.AddExecutorCategory(ctx, executorID, categoryID)
}

func (s *CategoryService) GetExecutorCategories(ctx context.Context, executorID int) ([]models.ServiceCategory, error) {
	return s.CategoryRepo.GetExecutorCategories(ctx, executorID)
}
