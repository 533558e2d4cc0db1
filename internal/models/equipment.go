package models

import (
	"time"
)

type Equipment struct {
	ID            int             `json:"id"`
	ExecutorID    int             `json:"executor_id"`
	EquipmentType string          `json:"equipment_type"`
	Subtype       *string         `json:"subtype,omitempty"`
	Brand         *string         `json:"brand,omitempty"`
	Model         *string         `json:"model,omitempty"`
	Year          *int            `json:"year,omitempty"`
	CapacityKg    *int            `json:"capacity_kg,omitempty"`
	VolumeM3      *float64        `json:"volume_m3,omitempty"`
	Dimensions    *string         `json:"dimensions,omitempty"`
	Features      map[string]bool `json:"features,omitempty"`
	IsAvailable   bool            `json:"is_available"`
	DailyRate     *int            `json:"daily_rate,omitempty"`
	HourlyRate    *int            `json:"hourly_rate,omitempty"`
	PhotoURL      *string         `json:"photo_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FullName builds the display name: brand+model, then brand, then model,
// falling back to the equipment type.
func (e *Equipment) FullName() string {
	switch {
	case e.Brand != nil && *e.Brand != "" && e.Model != nil && *e.Model != "":
		return *e.Brand + " " + *e.Model
	case e.Brand != nil && *e.Brand != "":
		return *e.Brand
	case e.Model != nil && *e.Model != "":
		return *e.Model
	default:
		return e.EquipmentType
	}
}

// EquipmentPatch enumerates the updatable equipment fields.
type EquipmentPatch struct {
	EquipmentType *string          `json:"equipment_type,omitempty"`
	Subtype       *string          `json:"subtype,omitempty"`
	Brand         *string          `json:"brand,omitempty"`
	Model         *string          `json:"model,omitempty"`
	Year          *int             `json:"year,omitempty"`
	CapacityKg    *int             `json:"capacity_kg,omitempty"`
	VolumeM3      *float64         `json:"volume_m3,omitempty"`
	Dimensions    *string          `json:"dimensions,omitempty"`
	Features      *map[string]bool `json:"features,omitempty"`
	DailyRate     *int             `json:"daily_rate,omitempty"`
	HourlyRate    *int             `json:"hourly_rate,omitempty"`
	PhotoURL      *string          `json:"photo_url,omitempty"`
}
