package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pressroom_backend/internal/models"
)

var (
	ErrRoleNotFound   = errors.New("role not found")
	ErrRoleAlreadySet = errors.New("user already has role")
)

// RoleRepository resolves role records and the user_roles join. The
// per-request capability check reads role names through RoleNamesForUser
// rather than trusting anything embedded in the access token.
type RoleRepository interface {
	FindByName(db *gorm.DB, name string) (*models.Role, error)
	EnsureRole(db *gorm.DB, name string) (*models.Role, error)
	AssignRole(db *gorm.DB, userID, roleID string) error
	RoleNamesForUser(db *gorm.DB, userID string) ([]string, error)
}

type roleRepository struct{}

func NewRoleRepository() RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) FindByName(db *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	if err := db.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// EnsureRole returns the role with the given name, creating it if absent.
// Used by startup seeding.
func (r *roleRepository) EnsureRole(db *gorm.DB, name string) (*models.Role, error) {
	role, err := r.FindByName(db, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, ErrRoleNotFound) {
		return nil, err
	}
	role = &models.Role{Name: name}
	if err := db.Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleRepository) AssignRole(db *gorm.DB, userID, roleID string) error {
	var existing models.UserRole
	err := db.Where("user_id = ? AND role_id = ?", userID, roleID).First(&existing).Error
	if err == nil {
		return ErrRoleAlreadySet
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&models.UserRole{UserID: userID, RoleID: roleID}).Error
}

func (r *roleRepository) RoleNamesForUser(db *gorm.DB, userID string) ([]string, error) {
	var names []string
	err := db.Model(&models.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	return names, err
}
