package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"gruzBack/internal/models"
)

type EquipmentRepository struct {
	DB *sql.DB
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e models.Equipment) (models.Equipment, error) {
	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO executor_equipment
			(executor_id, equipment_type, subtype, brand, model, year,
			 capacity_kg, volume_m3, dimensions, features, is_available, daily_rate, hourly_rate, photo_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?, NOW())
	`, e.ExecutorID, e.EquipmentType, e.Subtype, e.Brand, e.Model, e.Year,
		e.CapacityKg, e.VolumeM3, e.Dimensions, marshalFeatures(e.Features), e.DailyRate, e.HourlyRate, e.PhotoURL)
	if err != nil {
		return models.Equipment{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Equipment{}, err
	}
	e.ID = int(id)
	e.IsAvailable = true
	return e, nil
}

func (r *EquipmentRepository) GetEquipment(ctx context.Context, id int) (models.Equipment, error) {
	var e models.Equipment
	var features *string
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, executor_id, equipment_type, subtype, brand, model, year,
		       capacity_kg, volume_m3, dimensions, features, is_available, daily_rate, hourly_rate, photo_url, created_at
		FROM executor_equipment WHERE id = ?
	`, id).Scan(&e.ID, &e.ExecutorID, &e.EquipmentType, &e.Subtype, &e.Brand, &e.Model, &e.Year,
		&e.CapacityKg, &e.VolumeM3, &e.Dimensions, &features, &e.IsAvailable, &e.DailyRate, &e.HourlyRate, &e.PhotoURL, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Equipment{}, models.ErrEquipmentNotFound
	}
	if err != nil {
		return models.Equipment{}, err
	}
	e.Features = unmarshalFeatures(features)
	return e, nil
}

func (r *EquipmentRepository) GetExecutorEquipment(ctx context.Context, executorID int) ([]models.Equipment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, executor_id, equipment_type, subtype, brand, model, year,
		       capacity_kg, volume_m3, dimensions, features, is_available, daily_rate, hourly_rate, photo_url, created_at
		FROM executor_equipment
		WHERE executor_id = ?
		ORDER BY created_at DESC
	`, executorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	equipment := []models.Equipment{}
	for rows.Next() {
		var e models.Equipment
		var features *string
		if err := rows.Scan(&e.ID, &e.ExecutorID, &e.EquipmentType, &e.Subtype, &e.Brand, &e.Model, &e.Year,
			&e.CapacityKg, &e.VolumeM3, &e.Dimensions, &features, &e.IsAvailable, &e.DailyRate, &e.HourlyRate, &e.PhotoURL, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Features = unmarshalFeatures(features)
		equipment = append(equipment, e)
	}
	return equipment, rows.Err()
}

func (r *EquipmentRepository) GetAvailableEquipmentByType(ctx context.Context, equipmentType string) ([]models.Equipment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, executor_id, equipment_type, subtype, brand, model, year,
		       capacity_kg, volume_m3, dimensions, features, is_available, daily_rate, hourly_rate, photo_url, created_at
		FROM executor_equipment
		WHERE equipment_type = ? AND is_available = 1
		ORDER BY created_at DESC
	`, equipmentType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	equipment := []models.Equipment{}
	for rows.Next() {
		var e models.Equipment
		var features *string
		if err := rows.Scan(&e.ID, &e.ExecutorID, &e.EquipmentType, &e.Subtype, &e.Brand, &e.Model, &e.Year,
			&e.CapacityKg, &e.VolumeM3, &e.Dimensions, &features, &e.IsAvailable, &e.DailyRate, &e.HourlyRate, &e.PhotoURL, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Features = unmarshalFeatures(features)
		equipment = append(equipment, e)
	}
	return equipment, rows.Err()
}

// UpdateEquipment applies only the fields set on the patch.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id int, patch models.EquipmentPatch) error {
	var (
		sets   []string
		params []interface{}
	)
	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = ?", column))
		params = append(params, value)
	}

	if patch.EquipmentType != nil {
		add("equipment_type", *patch.EquipmentType)
	}
	if patch.Subtype != nil {
		add("subtype", *patch.Subtype)
	}
	if patch.Brand != nil {
		add("brand", *patch.Brand)
	}
	if patch.Model != nil {
		add("model", *patch.Model)
	}
	if patch.Year != nil {
		add("year", *patch.Year)
	}
	if patch.CapacityKg != nil {
		add("capacity_kg", *patch.CapacityKg)
	}
	if patch.VolumeM3 != nil {
		add("volume_m3", *patch.VolumeM3)
	}
	if patch.Dimensions != nil {
		add("dimensions", *patch.Dimensions)
	}
	if patch.Features != nil {
		add("features", marshalFeatures(*patch.Features))
	}
	if patch.DailyRate != nil {
		add("daily_rate", *patch.DailyRate)
	}
	if patch.HourlyRate != nil {
		add("hourly_rate", *patch.HourlyRate)
	}
	if patch.PhotoURL != nil {
		add("photo_url", *patch.PhotoURL)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE executor_equipment SET %s WHERE id = ?`, strings.Join(sets, ", "))
	params = append(params, id)

	res, err := r.DB.ExecContext(ctx, query, params...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var marker int
		if err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM executor_equipment WHERE id = ?`, id).Scan(&marker); errors.Is(err, sql.ErrNoRows) {
			return models.ErrEquipmentNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// DeleteEquipment reports whether a row was actually removed.
func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM executor_equipment WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *EquipmentRepository) ToggleAvailability(ctx context.Context, id int, isAvailable bool) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE executor_equipment SET is_available = ? WHERE id = ?`, isAvailable, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		var marker int
		if err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM executor_equipment WHERE id = ?`, id).Scan(&marker); errors.Is(err, sql.ErrNoRows) {
			return false, nil
		} else if err != nil {
			return false, err
		}
	}
	return true, nil
}

func marshalFeatures(features map[string]bool) *string {
	if len(features) == 0 {
		return nil
	}
	data, err := json.Marshal(features)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

// unmarshalFeatures degrades to an empty map on malformed stored JSON.
func unmarshalFeatures(raw *string) map[string]bool {
	if raw == nil || *raw == "" {
		return map[string]bool{}
	}
	features := map[string]bool{}
	if err := json.Unmarshal([]byte(*raw), &features); err != nil {
		log.Printf("equipment features: dropping malformed payload: %v", err)
		return map[string]bool{}
	}
	return features
}
