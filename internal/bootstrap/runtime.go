package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoContent bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo content.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; callers degrade.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevStaffOwner(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development staff owner: %w", err)
	}

	if opts.SeedDemoContent {
		if err := seed.Run(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo content: %w", err)
		}
	}

	return db, r, nil
}

// ensureDevStaffOwner guarantees a staff superuser at ID 1 in development
// so the dashboard is reachable on a fresh database.
func ensureDevStaffOwner(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapStaff {
		return nil
	}

	username := strings.TrimSpace(cfg.DevStaffUsername)
	if username == "" {
		username = "inkwell_owner"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevStaffEmail))
	if email == "" {
		email = "owner@inkwell.local"
	}
	password := cfg.DevStaffPassword
	if password == "" {
		return fmt.Errorf("DEV_STAFF_PASSWORD must be set when DEV_BOOTSTRAP_STAFF is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var owner models.User
		findErr := tx.First(&owner, 1).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			owner = models.User{
				ID:          1,
				Username:    username,
				Email:       email,
				Password:    string(hashedPassword),
				IsStaff:     true,
				IsSuperuser: true,
			}
			if err := tx.Create(&owner).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		default:
			updates := map[string]any{"is_staff": true, "is_superuser": true}
			if cfg.DevStaffForceCredentials {
				updates["username"] = username
				updates["email"] = email
				updates["password"] = string(hashedPassword)
			}
			if err := tx.Model(&models.User{}).Where("id = ?", 1).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Ensure the users ID sequence is not behind the explicit ID
		// insertion. PostgreSQL-specific.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(`
				SELECT setval(
					pg_get_serial_sequence('users', 'id'),
					GREATEST((SELECT COALESCE(MAX(id), 1) FROM users), 1),
					true
				)
			`).Error; err != nil {
				return fmt.Errorf("failed to reset users sequence: %w", err)
			}
		}

		return nil
	}); err != nil {
		return err
	}

	log.Printf("development staff owner bootstrap ensured for user ID 1 (%s)", email)
	return nil
}
