package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pressroom_backend/database"
	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/config"
	"pressroom_backend/internal/email"
	"pressroom_backend/internal/handlers"
	"pressroom_backend/internal/logger"
	"pressroom_backend/internal/middleware"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/routes"
	"pressroom_backend/internal/services"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	if err := SeedRoles(gormDB); err != nil {
		logger.Fatal("Failed to seed roles", "error", err)
	}
	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	startTokenJanitor(gormDB)

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	mailer := newMailer(cfg)

	serviceContainer := services.NewServiceContainer(cfg, mailer)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, accessTTL(cfg))
	appHandlers := handlers.NewAppHandlers(serviceContainer, tokens)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func newMailer(cfg *config.Config) email.Sender {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, outgoing mail disabled")
		return email.NoopSender{}
	}
	mailer, err := email.NewSMTPSender(cfg.Email)
	if err != nil {
		logger.Fatal("Failed to initialize SMTP sender", "error", err)
	}
	return mailer
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// SeedRoles makes sure the three built-in roles exist. Exported so the
// test harness can reuse it against a fresh schema.
func SeedRoles(db *gorm.DB) error {
	roleRepo := repositories.NewRoleRepository()
	for _, name := range auth.AllRoles {
		if _, err := roleRepo.EnsureRole(db, name); err != nil {
			return fmt.Errorf("ensure role %s: %w", name, err)
		}
	}
	return nil
}

// seedFirstAdmin bootstraps the first administrator account from config.
// A no-op when the account already exists or the config is empty.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("first_admin_email or first_admin_password not set, skipping admin seeding")
		return nil
	}

	userRepo := repositories.NewUserRepository()
	roleRepo := repositories.NewRoleRepository()

	return db.Transaction(func(tx *gorm.DB) error {
		existing, err := userRepo.FindByEmail(tx, cfg.FirstAdminEmail)
		if err == nil {
			logger.Info("Admin user already exists, skipping creation", "user_id", existing.ID)
			return nil
		}
		if err != repositories.ErrUserNotFound {
			return fmt.Errorf("check for admin user: %w", err)
		}

		hash, err := auth.HashPassword(cfg.FirstAdminPassword)
		if err != nil {
			return err
		}

		admin := &models.User{
			Email:         cfg.FirstAdminEmail,
			PasswordHash:  hash,
			Name:          "Administrator",
			IsActive:      true,
			EmailVerified: true,
		}
		if err := userRepo.Create(tx, admin); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}

		for _, name := range []string{auth.RoleAdmin, auth.RoleUser} {
			role, err := roleRepo.EnsureRole(tx, name)
			if err != nil {
				return err
			}
			if err := roleRepo.AssignRole(tx, admin.ID, role.ID); err != nil && err != repositories.ErrRoleAlreadySet {
				return err
			}
		}

		logger.Info("First admin user created", "user_id", admin.ID)
		return nil
	})
}

// startTokenJanitor prunes expired refresh tokens once at startup and
// then hourly. Revoked-but-unexpired rows stay on record.
func startTokenJanitor(db *gorm.DB) {
	refreshRepo := repositories.NewRefreshTokenRepository()
	purge := func() {
		if err := refreshRepo.DeleteExpired(db); err != nil {
			logger.Error("Failed to prune expired refresh tokens", "error", err)
		}
	}
	purge()
	go func() {
		for range time.Tick(time.Hour) {
			purge()
		}
	}()
}

func accessTTL(cfg *config.Config) time.Duration {
	return time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute
}
