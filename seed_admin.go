package main

import (
	"log"
	"os"
	"strings"

	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
	"beauty-clinic-server/services"
)

// seedAdmin bootstraps the first back-office account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Does nothing when an admin already exists.
func seedAdmin() {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		log.Printf("❌ Failed to check for existing admin: %v", err)
		return
	}
	if count > 0 {
		log.Printf("⏭️  Admin account already exists, skipping seed")
		return
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Printf("⚠️ ADMIN_EMAIL and ADMIN_PASSWORD not set, no admin seeded")
		return
	}

	hash, err := services.NewJWTService().HashPassword(password)
	if err != nil {
		log.Printf("❌ Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		FullName:     "Clinic Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("❌ Failed to create admin account: %v", err)
		return
	}

	log.Printf("✅ Bootstrap admin created: %s", email)
}
