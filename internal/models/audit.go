package models

import "gorm.io/datatypes"

// AuditLog is append-only; nothing in the codebase updates or deletes rows.
// UserID is empty when the actor could not be resolved.
type AuditLog struct {
	BaseModel
	UserID     string         `gorm:"index" json:"user_id"`
	Action     string         `gorm:"size:128;not null" json:"action"`
	TargetType string         `gorm:"size:128" json:"target_type"`
	TargetID   string         `gorm:"size:64" json:"target_id"`
	Details    datatypes.JSON `json:"details,omitempty"`
}
