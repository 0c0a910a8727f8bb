package models

// Comment rows form a tree through ParentID. A non-nil ParentID must
// reference a comment under the same ContentID; the service enforces this
// on create so listing can assemble the tree in a single pass.
type Comment struct {
	BaseModel
	ContentID string  `gorm:"not null;index" json:"content_id"`
	UserID    string  `gorm:"not null;index" json:"user_id"`
	ParentID  *string `gorm:"index" json:"parent_id"`
	Body      string  `gorm:"not null" json:"body"`
}
