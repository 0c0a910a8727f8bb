package models

// Reaction is one Like/Dislike per (user, content); re-reacting replaces
// the previous type.
type Reaction struct {
	BaseModel
	UserID    string       `gorm:"not null;index:idx_user_content_reaction,unique" json:"user_id"`
	ContentID string       `gorm:"not null;index:idx_user_content_reaction,unique" json:"content_id"`
	Type      ReactionType `gorm:"type:varchar(20);not null" json:"type"`
}
