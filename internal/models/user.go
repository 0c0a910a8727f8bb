package models

type User struct {
	BaseModel
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"not null" json:"-"`
	Name          string `gorm:"size:128" json:"name"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
	EmailVerified bool   `gorm:"default:false" json:"email_verified"`

	// Role membership lives in the explicit UserRole join; services attach
	// names here for responses.
	RoleNames []string `gorm:"-" json:"roles,omitempty"`

	// Relations
	Profile       *UserProfile   `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type Role struct {
	BaseModel
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

// UserRole is the explicit join row between users and roles. Declared so
// the authorization layer can query it directly.
type UserRole struct {
	BaseModel
	UserID string `gorm:"not null;index:idx_user_role,unique" json:"user_id"`
	RoleID string `gorm:"not null;index:idx_user_role,unique" json:"role_id"`
}

type UserProfile struct {
	BaseModel
	UserID      string `gorm:"uniqueIndex;not null" json:"user_id"`
	Name        string `gorm:"size:128" json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `gorm:"size:256" json:"avatar_url"`
	SocialLinks string `gorm:"size:512" json:"social_links"`
}
