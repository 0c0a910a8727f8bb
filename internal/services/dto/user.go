package dto

import "time"

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=128"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url,max=256"`
	SocialLinks *string `json:"social_links" validate:"omitempty,max=512"`
}

type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	SocialLinks string    `json:"social_links"`
	CreatedAt   time.Time `json:"created_at"`
}

type PromoteResponse struct {
	Message string   `json:"message"`
	Roles   []string `json:"roles"`
}
