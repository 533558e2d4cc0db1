package services

import (
	"context"
	"errors"
	"testing"

	"gruzBack/internal/models"
)

func TestAddEquipment(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 2, Role: models.RoleExecutor})
	repo := newFakeEquipmentRepo()
	svc := &EquipmentService{EquipmentRepo: repo, UserRepo: users}

	daily, hourly := 20000, 3000
	created, err := svc.AddEquipment(context.Background(), 2, models.Equipment{
		EquipmentType: "gazelle",
		DailyRate:     &daily,
		HourlyRate:    &hourly,
	})
	if err != nil {
		t.Fatalf("AddEquipment: %v", err)
	}
	if created.ExecutorID != 2 {
		t.Errorf("executor_id = %d, want 2", created.ExecutorID)
	}
}

func TestAddEquipmentNotExecutor(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 1, Role: models.RoleCustomer})
	svc := &EquipmentService{EquipmentRepo: newFakeEquipmentRepo(), UserRepo: users}

	_, err := svc.AddEquipment(context.Background(), 1, models.Equipment{EquipmentType: "gazelle"})
	if !errors.Is(err, models.ErrNotExecutor) {
		t.Fatalf("err = %v, want ErrNotExecutor", err)
	}
}

func TestAddEquipmentRateValidation(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 2, Role: models.RoleExecutor})
	svc := &EquipmentService{EquipmentRepo: newFakeEquipmentRepo(), UserRepo: users}

	negative := -1
	if _, err := svc.AddEquipment(context.Background(), 2, models.Equipment{EquipmentType: "crane", DailyRate: &negative}); !errors.Is(err, models.ErrInvalidPrice) {
		t.Errorf("negative daily rate: err = %v, want ErrInvalidPrice", err)
	}

	daily, hourly := 1000, 5000
	if _, err := svc.AddEquipment(context.Background(), 2, models.Equipment{EquipmentType: "crane", DailyRate: &daily, HourlyRate: &hourly}); !errors.Is(err, models.ErrInvalidRate) {
		t.Errorf("hourly above daily: err = %v, want ErrInvalidRate", err)
	}
}

func TestUpdateEquipmentValidatesEffectiveRates(t *testing.T) {
	daily := 10000
	repo := newFakeEquipmentRepo(models.Equipment{ID: 1, ExecutorID: 2, EquipmentType: "crane", DailyRate: &daily})
	svc := &EquipmentService{EquipmentRepo: repo, UserRepo: newFakeUserRepo()}

	// New hourly rate exceeds the daily rate already on the row.
	hourly := 15000
	_, err := svc.UpdateEquipment(context.Background(), 1, models.EquipmentPatch{HourlyRate: &hourly})
	if !errors.Is(err, models.ErrInvalidRate) {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
}

func TestDeleteEquipment(t *testing.T) {
	repo := newFakeEquipmentRepo(models.Equipment{ID: 1, ExecutorID: 2, EquipmentType: "gazelle"})
	svc := &EquipmentService{EquipmentRepo: repo, UserRepo: newFakeUserRepo()}

	deleted, err := svc.DeleteEquipment(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("DeleteEquipment: %v", err)
	}
	if !deleted {
		t.Error("deleted = false, want true")
	}

	// Already gone: not an error.
	deleted, err = svc.DeleteEquipment(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("repeat DeleteEquipment: %v", err)
	}
	if deleted {
		t.Error("deleted = true for missing unit")
	}
}

func TestDeleteEquipmentForeignOwner(t *testing.T) {
	repo := newFakeEquipmentRepo(models.Equipment{ID: 1, ExecutorID: 2, EquipmentType: "gazelle"})
	svc := &EquipmentService{EquipmentRepo: repo, UserRepo: newFakeUserRepo()}

	_, err := svc.DeleteEquipment(context.Background(), 3, 1)
	if !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if _, ok := repo.equipment[1]; !ok {
		t.Error("equipment was deleted despite permission error")
	}
}
