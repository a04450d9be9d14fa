package migration

import (
	"os"

	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for every table and seeds the default admin
// account if the users table is empty.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Application{},
		&domain.Post{},
		&domain.Project{},
		&domain.Claim{},
		&domain.ChatMessage{},
	); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.User{}).Count(&count)
	if count == 0 {
		return seedAdmin(db)
	}

	return nil
}

// seedAdmin creates the bootstrap admin account. The password comes
// from ADMIN_PASSWORD; without it no account is seeded.
func seedAdmin(db *gorm.DB) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Warn("users table is empty and ADMIN_PASSWORD is not set, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     "admin",
		Email:        "admin@localhost",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("seeded default admin account")
	return nil
}
