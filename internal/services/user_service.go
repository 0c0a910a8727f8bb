package services

import (
	"context"

	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	// Promote grants the named role to a user. Admin only; enforced by
	// the route middleware.
	Promote(ctx context.Context, db *gorm.DB, actorID, targetID, roleName string) (*dto.PromoteResponse, error)
	Deactivate(ctx context.Context, db *gorm.DB, actorID, targetID string) error
}

type userService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	auditSvc AuditService
}

func NewUserService(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository, auditSvc AuditService) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo, auditSvc: auditSvc}
}

func (s *userService) GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.userRepo.FindProfileByUserID(db, userID)
	if err != nil && !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}
	return toProfileResponse(user, profile), nil
}

// UpdateProfile creates the profile row on first write.
func (s *userService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.userRepo.FindProfileByUserID(db, userID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
		profile = &models.UserProfile{UserID: userID, Name: user.Name}
	}

	if req.Name != nil {
		profile.Name = *req.Name
		user.Name = *req.Name
		if err := s.userRepo.Update(db, user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.SocialLinks != nil {
		profile.SocialLinks = *req.SocialLinks
	}

	if err := s.userRepo.SaveProfile(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toProfileResponse(user, profile), nil
}

func (s *userService) Promote(ctx context.Context, db *gorm.DB, actorID, targetID, roleName string) (*dto.PromoteResponse, error) {
	if err := auth.ValidateRole(roleName); err != nil {
		return nil, apperrors.ErrRoleNotFound
	}

	user, err := s.userRepo.FindByID(db, targetID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	role, err := s.roleRepo.EnsureRole(db, roleName)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.roleRepo.AssignRole(db, user.ID, role.ID); err != nil {
		if apperrors.Is(err, repositories.ErrRoleAlreadySet) {
			return nil, apperrors.ErrRoleAlreadySet
		}
		return nil, apperrors.InternalError(err)
	}

	names, err := s.roleRepo.RoleNamesForUser(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.auditSvc.Record(ctx, db, actorID, "user.promote", "user", user.ID,
		map[string]interface{}{"role": roleName})

	return &dto.PromoteResponse{
		Message: "Role granted",
		Roles:   names,
	}, nil
}

func (s *userService) Deactivate(ctx context.Context, db *gorm.DB, actorID, targetID string) error {
	user, err := s.userRepo.FindByID(db, targetID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if !user.IsActive {
		return nil
	}
	user.IsActive = false
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	s.auditSvc.Record(ctx, db, actorID, "user.deactivate", "user", user.ID, nil)
	return nil
}

func toProfileResponse(user *models.User, profile *models.UserProfile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
	if profile != nil {
		if profile.Name != "" {
			resp.Name = profile.Name
		}
		resp.Bio = profile.Bio
		resp.AvatarURL = profile.AvatarURL
		resp.SocialLinks = profile.SocialLinks
	}
	return resp
}
