package models

type ServiceCategory struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	ParentID      *int   `json:"parent_id,omitempty"`
	EquipmentType string `json:"equipment_type"`
}
