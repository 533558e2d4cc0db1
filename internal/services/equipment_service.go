package services

import (
	"context"
	"errors"

	"gruzBack/internal/models"
)

// EquipmentRepo is the persistence surface the equipment service needs.
type EquipmentRepo interface {
	CreateEquipment(ctx context.Context, e models.Equipment) (models.Equipment, error)
	GetEquipment(ctx context.Context, id int) (models.Equipment, error)
	GetExecutorEquipment(ctx context.Context, executorID int) ([]models.Equipment, error)
	GetAvailableEquipmentByType(ctx context.Context, equipmentType string) ([]models.Equipment, error)
	UpdateEquipment(ctx context.Context, id int, patch models.EquipmentPatch) error
	DeleteEquipment(ctx context.Context, id int) (bool, error)
	ToggleAvailability(ctx context.Context, id int, isAvailable bool) (bool, error)
}

type EquipmentService struct {
	EquipmentRepo EquipmentRepo
	UserRepo      UserRepo
}

// AddEquipment registers a unit for an executor. The owner must exist and
// actually be an executor.
func (s *EquipmentService) AddEquipment(ctx context.Context, executorID int, e models.Equipment) (models.Equipment, error) {
	owner, err := s.UserRepo.GetUser(ctx, executorID)
	if err != nil {
		return models.Equipment{}, err
	}
	if !owner.IsExecutor() {
		return models.Equipment{}, models.ErrNotExecutor
	}
	if err := validateRates(e.DailyRate, e.HourlyRate); err != nil {
		return models.Equipment{}, err
	}

	e.ExecutorID = executorID
	return s.EquipmentRepo.CreateEquipment(ctx, e)
}

func (s *EquipmentService) GetEquipment(ctx context.Context, id int) (models.Equipment, error) {
	return s.EquipmentRepo.GetEquipment(ctx, id)
}

func (s *EquipmentService) GetExecutorEquipment(ctx context.Context, executorID int) ([]models.Equipment, error) {
	return s.EquipmentRepo.GetExecutorEquipment(ctx, executorID)
}

func (s *EquipmentService) GetAvailableEquipmentByType(ctx context.Context, equipmentType string) ([]models.Equipment, error) {
	return s.EquipmentRepo.GetAvailableEquipmentByType(ctx, equipmentType)
}

// UpdateEquipment applies an enumerated patch; rates are validated against the
// values the row will end up with.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id int, patch models.EquipmentPatch) (models.Equipment, error) {
	existing, err := s.EquipmentRepo.GetEquipment(ctx, id)
	if err != nil {
		return models.Equipment{}, err
	}

	daily := existing.DailyRate
	if patch.DailyRate != nil {
		daily = patch.DailyRate
	}
	hourly := existing.HourlyRate
	if patch.HourlyRate != nil {
		hourly = patch.HourlyRate
	}
	if err := validateRates(daily, hourly); err != nil {
		return models.Equipment{}, err
	}

	if err := s.EquipmentRepo.UpdateEquipment(ctx, id, patch); err != nil {
		return models.Equipment{}, err
	}
	return s.EquipmentRepo.GetEquipment(ctx, id)
}

// DeleteEquipment removes the unit after an ownership check. A unit that is
// already gone yields (false, nil), not an error.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, executorID, equipmentID int) (bool, error) {
	equipment, err := s.EquipmentRepo.GetEquipment(ctx, equipmentID)
	if errors.Is(err, models.ErrEquipmentNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if equipment.ExecutorID != executorID {
		return false, models.ErrPermissionDenied
	}
	return s.EquipmentRepo.DeleteEquipment(ctx, equipmentID)
}

func (s *EquipmentService) ToggleAvailability(ctx context.Context, id int, isAvailable bool) (bool, error) {
	return s.EquipmentRepo.ToggleAvailability(ctx, id, isAvailable)
}

func validateRates(daily, hourly *int) error {
	if daily != nil && *daily < 0 {
		return models.ErrInvalidPrice
	}
	if hourly != nil && *hourly < 0 {
		return models.ErrInvalidPrice
	}
	if daily != nil && hourly != nil && *hourly > *daily {
		return models.ErrInvalidRate
	}
	return nil
}
