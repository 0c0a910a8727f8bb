package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID    string         `gorm:"not null;index" json:"user_id"`
	ContentID *string        `gorm:"index" json:"content_id"`
	Message   string         `gorm:"size:256;not null" json:"message"`
	Data      datatypes.JSON `json:"data,omitempty"`
	IsRead    bool           `gorm:"default:false" json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
}

// Subscription links a user to a category and drives publish fan-out.
type Subscription struct {
	BaseModel
	UserID     string `gorm:"not null;index:idx_user_category,unique" json:"user_id"`
	CategoryID string `gorm:"not null;index:idx_user_category,unique" json:"category_id"`
}
