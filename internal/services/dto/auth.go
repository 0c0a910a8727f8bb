package dto

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email,max=128"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required" validate:"required"`
	NewPassword string `json:"new_password" binding:"required" validate:"required,min=8"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
