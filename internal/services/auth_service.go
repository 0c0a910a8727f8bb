package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/email"
	"pressroom_backend/internal/logger"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

const (
	passwordResetTTL     = time.Hour
	emailVerificationTTL = 48 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.RefreshResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error
	ConfirmPasswordReset(db *gorm.DB, token, newPassword string) error
	VerifyEmail(db *gorm.DB, token string) error
	Me(db *gorm.DB, userID string) (*dto.UserResponse, error)

	// IssueTokens builds an access/refresh pair for an already
	// authenticated user. Shared with the OAuth exchange path.
	IssueTokens(db *gorm.DB, user *models.User) (*dto.LoginResponse, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	roleRepo    repositories.RoleRepository
	refreshRepo repositories.RefreshTokenRepository
	resetRepo   repositories.PasswordResetTokenRepository
	verifyRepo  repositories.EmailVerificationTokenRepository
	tokens      *auth.TokenManager
	refreshTTL  time.Duration
	mailer      email.Sender
}

func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	refreshRepo repositories.RefreshTokenRepository,
	resetRepo repositories.PasswordResetTokenRepository,
	verifyRepo repositories.EmailVerificationTokenRepository,
	tokens *auth.TokenManager,
	refreshTTL time.Duration,
	mailer email.Sender,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		refreshRepo: refreshRepo,
		resetRepo:   resetRepo,
		verifyRepo:  verifyRepo,
		tokens:      tokens,
		refreshTTL:  refreshTTL,
		mailer:      mailer,
	}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		IsActive:     true,
	}

	// The user row, its default role and the issued tokens land together
	// or not at all. A role-less account would fail every permission
	// check while still occupying the email.
	var resp *dto.LoginResponse
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}

		// Every account starts as a plain User; promotion is a separate,
		// admin-only operation.
		role, err := s.roleRepo.EnsureRole(tx, auth.RoleUser)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.roleRepo.AssignRole(tx, user.ID, role.ID); err != nil && !apperrors.Is(err, repositories.ErrRoleAlreadySet) {
			return apperrors.InternalError(err)
		}
		user.RoleNames = []string{auth.RoleUser}

		s.sendVerification(ctx, tx, user)

		resp, err = s.IssueTokens(tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Same answer as a bad password, so the endpoint does not
			// leak which emails are registered.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	if err := s.attachRoles(db, user); err != nil {
		return nil, err
	}
	return s.IssueTokens(db, user)
}

func (s *authService) IssueTokens(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     auth.NewOpaqueToken(),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.refreshRepo.Create(db, refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		User:         toUserResponse(user),
	}, nil
}

func (s *authService) Refresh(db *gorm.DB, refreshToken string) (*dto.RefreshResponse, error) {
	stored, err := s.refreshRepo.FindByToken(db, refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RefreshResponse{AccessToken: accessToken}, nil
}

func (s *authService) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.refreshRepo.Revoke(db, refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// RequestPasswordReset always reports success to the caller. An unknown
// email simply does not produce a token.
func (s *authService) RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     auth.NewOpaqueToken(),
		ExpiresAt: time.Now().Add(passwordResetTTL),
	}
	if err := s.resetRepo.Create(db, token); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.mailer.SendPasswordReset(user.Email, token.Token); err != nil {
		logger.CtxError(ctx, "failed to send password reset email", "user_id", user.ID, "error", err)
	}
	return nil
}

func (s *authService) ConfirmPasswordReset(db *gorm.DB, tokenStr, newPassword string) error {
	token, err := s.resetRepo.FindUnused(db, tokenStr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrResetTokenInvalid
		}
		return apperrors.InternalError(err)
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrResetTokenInvalid
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(db, token.UserID)
	if err != nil {
		return apperrors.ErrResetTokenInvalid
	}
	user.PasswordHash = hash

	// One commit: a half-applied reset would leave the token replayable
	// after the password already changed.
	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Update(tx, user); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.resetRepo.MarkUsed(tx, token); err != nil {
			return apperrors.InternalError(err)
		}
		// Force re-authentication everywhere after a password change.
		if err := s.refreshRepo.RevokeAllForUser(tx, user.ID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

func (s *authService) VerifyEmail(db *gorm.DB, tokenStr string) error {
	token, err := s.verifyRepo.FindUnused(db, tokenStr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrResetTokenInvalid
		}
		return apperrors.InternalError(err)
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrResetTokenInvalid
	}

	user, err := s.userRepo.FindByID(db, token.UserID)
	if err != nil {
		return apperrors.ErrResetTokenInvalid
	}
	user.EmailVerified = true
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	return s.verifyRepo.MarkUsed(db, token)
}

func (s *authService) Me(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.attachRoles(db, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *authService) attachRoles(db *gorm.DB, user *models.User) error {
	names, err := s.roleRepo.RoleNamesForUser(db, user.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.RoleNames = names
	return nil
}

func (s *authService) sendVerification(ctx context.Context, db *gorm.DB, user *models.User) {
	token := &models.EmailVerificationToken{
		UserID:    user.ID,
		Token:     auth.NewOpaqueToken(),
		ExpiresAt: time.Now().Add(emailVerificationTTL),
	}
	if err := s.verifyRepo.Create(db, token); err != nil {
		logger.CtxError(ctx, "failed to store verification token", "user_id", user.ID, "error", err)
		return
	}
	if err := s.mailer.SendEmailVerification(user.Email, token.Token); err != nil {
		logger.CtxError(ctx, "failed to send verification email", "user_id", user.ID, "error", err)
	}
}

func toUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsActive:  user.IsActive,
		Roles:     user.RoleNames,
		CreatedAt: user.CreatedAt,
	}
}
