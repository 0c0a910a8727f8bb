package models

type Category struct {
	BaseModel
	Name        string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:256" json:"description"`
	CreatedBy   string `gorm:"index" json:"created_by"`
}

type Content struct {
	BaseModel
	Title       string        `gorm:"size:256;not null" json:"title"`
	Body        string        `json:"body"`
	MediaURL    string        `gorm:"size:512" json:"media_url"`
	ContentType ContentType   `gorm:"type:varchar(20);not null" json:"content_type"`
	Status      ContentStatus `gorm:"type:varchar(20);default:'Draft'" json:"status"`
	AuthorID    string        `gorm:"not null;index" json:"author_id"`
	CategoryID  *string       `gorm:"index" json:"category_id"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Comments []Comment `gorm:"foreignKey:ContentID" json:"-"`
}
