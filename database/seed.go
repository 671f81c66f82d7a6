package database

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

// Seed creates the default admin account and a starter set of tables on an
// empty database. Safe to run on every boot.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount == 0 {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "ChangeMe123!"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin := models.User{
			Name:        "Administrator",
			Email:       "admin@dinescan.local",
			Password:    string(hashed),
			Role:        models.RoleAdmin,
			Permissions: models.DefaultPermissions(models.RoleAdmin),
			IsActive:    true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded default admin account: %s", admin.Email)
	}

	var tableCount int64
	if err := db.Model(&models.Table{}).Count(&tableCount).Error; err != nil {
		return err
	}

	if tableCount == 0 {
		for i := 1; i <= 8; i++ {
			table := models.Table{
				TableNumber: fmt.Sprintf("T%d", i),
				Capacity:    4,
				Status:      models.TableAvailable,
				QRSlug:      uuid.NewString(),
			}
			if err := db.Create(&table).Error; err != nil {
				return err
			}
		}
		utils.InfoLogger.Println("Seeded starter tables T1-T8")
	}

	return nil
}
