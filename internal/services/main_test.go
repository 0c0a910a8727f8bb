package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pressroom_backend/database"
	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema
// applied. Single connection, so every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, roles ...string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)

	roleRepo := repositories.NewRoleRepository()
	for _, name := range roles {
		role, err := roleRepo.EnsureRole(db, name)
		require.NoError(t, err)
		require.NoError(t, roleRepo.AssignRole(db, user.ID, role.ID))
	}
	user.RoleNames = roles
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Description: "test category"}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestContent(t *testing.T, db *gorm.DB, authorID string, status models.ContentStatus, categoryID *string) *models.Content {
	t.Helper()

	content := &models.Content{
		Title:       "Test Article",
		Body:        "body",
		ContentType: models.ContentTypeArticle,
		Status:      status,
		AuthorID:    authorID,
		CategoryID:  categoryID,
	}
	require.NoError(t, db.Create(content).Error)
	return content
}
