package main

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/taskdeck-dev/taskdeck/db"
	"github.com/taskdeck-dev/taskdeck/internal/auth"
	"github.com/taskdeck-dev/taskdeck/internal/config"
	"github.com/taskdeck-dev/taskdeck/internal/handlers"
	"github.com/taskdeck-dev/taskdeck/internal/logger"
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/router"
	"github.com/taskdeck-dev/taskdeck/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using environment variables")
	}

	cfg := config.Load()

	level := logger.ParseLevel(cfg.Log.Level)

	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefault(fileLogger)
	} else {
		stdLogger, err := logger.New(level)
		if err != nil {
			logger.Fatal("Failed to initialize logger: %v", err)
		}
		logger.SetDefault(stdLogger)
	}
	defer logger.Default().Sync()

	if err := auth.Init(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.ExpiresMinutes, cfg.JWT.RefreshExpiresHrs); err != nil {
		logger.Fatal("Failed to initialize auth: %v", err)
	}

	handlers.Init(cfg)

	if err := db.ConnectDatabase(cfg.Database.DSN()); err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatal("Failed to migrate database: %v", err)
	}

	if err := seedAdmin(cfg); err != nil {
		logger.Fatal("Failed to seed admin account: %v", err)
	}

	gin.SetMode(ginMode(cfg.Server.Mode))

	r := router.NewRouter()

	logger.Info("Starting Taskdeck on port %s", cfg.Server.Port)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Server exited: %v", err)
	}
}

// seedAdmin ensures the configured admin account exists. It runs on
// every boot and is a no-op once the account is present.
func seedAdmin(cfg *config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("Admin credentials not configured, skipping admin seed")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Admin.Email))

	var existing models.User

	err := db.DB.Where("email = ?", email).First(&existing).Error

	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	encryptedPassword, err := utils.Encrypt(cfg.Crypto.EncryptionKey, cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:              "Admin",
		Email:             email,
		Role:              "admin",
		Status:            "active",
		PasswordHash:      string(passwordHash),
		EncryptedPassword: encryptedPassword,
	}

	if err := db.DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded admin account %s", email)
	return nil
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
