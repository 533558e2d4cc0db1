package repositories

import (
	"context"
	"database/sql"
	"errors"

	"gruzBack/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

// defaultCategories is the fixed seed catalog keyed by unique code.
var defaultCategories = []models.ServiceCategory{
	{Name: "Грузоперевозки", Code: "truck", EquipmentType: "truck"},
	{Name: "Газель", Code: "gazelle", EquipmentType: "truck"},
	{Name: "Фура", Code: "fura", EquipmentType: "truck"},
	{Name: "Рефрижератор", Code: "refrigerator", EquipmentType: "truck"},
	{Name: "Спецтехника", Code: "special", EquipmentType: "special"},
	{Name: "Экскаватор", Code: "excavator", EquipmentType: "special"},
	{Name: "Кран", Code: "crane", EquipmentType: "special"},
	{Name: "Погрузчик", Code: "loader", EquipmentType: "special"},
	{Name: "Бульдозер", Code: "bulldozer", EquipmentType: "special"},
	{Name: "Доставка", Code: "delivery", EquipmentType: "universal"},
	{Name: "Квартирный переезд", Code: "moving", EquipmentType: "universal"},
	{Name: "Другое", Code: "other", EquipmentType: "universal"},
}

// SeedDefaultCategories fills the catalog on startup; already present codes
// are left as they are.
func (r *CategoryRepository) SeedDefaultCategories(ctx context.Context) error {
	for _, c := range defaultCategories {
		if _, err := r.DB.ExecContext(ctx, `
			INSERT IGNORE INTO service_categories (name, code, parent_id, equipment_type)
			VALUES (?, ?, ?, ?)
		`, c.Name, c.Code, c.ParentID, c.EquipmentType); err != nil {
			return err
		}
	}
	return nil
}

// GetCategories returns root categories when parentID is nil, otherwise the
// children of the given parent.
func (r *CategoryRepository) GetCategories(ctx context.Context, parentID *int) ([]models.ServiceCategory, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID != nil {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT id, name, code, parent_id, equipment_type FROM service_categories
			WHERE parent_id = ? ORDER BY name
		`, *parentID)
	} else {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT id, name, code, parent_id, equipment_type FROM service_categories
			WHERE parent_id IS NULL ORDER BY name
		`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *CategoryRepository) GetCategoryByCode(ctx context.Context, code string) (models.ServiceCategory, error) {
	var c models.ServiceCategory
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, code, parent_id, equipment_type FROM service_categories WHERE code = ?
	`, code).Scan(&c.ID, &c.Name, &c.Code, &c.ParentID, &c.EquipmentType)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ServiceCategory{}, models.ErrCategoryNotFound
	}
	if err != nil {
		return models.ServiceCategory{}, err
	}
	return c, nil
}

func (r *CategoryRepository) AddExecutorCategory(ctx context.Context, executorID, categoryID int) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT IGNORE INTO executor_categories (executor_id, category_id) VALUES (?, ?)
	`, executorID, categoryID)
	return err
}

func (r *CategoryRepository) GetExecutorCategories(ctx context.Context, executorID int) ([]models.ServiceCategory, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT sc.id, sc.name, sc.code, sc.parent_id, sc.equipment_type
		FROM executor_categories ec
		JOIN service_categories sc ON ec.category_id = sc.id
		WHERE ec.executor_id = ?
	`, executorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func scanCategories(rows *sql.Rows) ([]models.ServiceCategory, error) {
	categories := []models.ServiceCategory{}
	for rows.Next() {
		var c models.ServiceCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.ParentID, &c.EquipmentType); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
