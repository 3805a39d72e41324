package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"beauty-clinic-server/config"
	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
)

var testDBSeq int64

// setupTestDB swaps the global handle for an isolated in-memory database and
// restores it when the test finishes.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.Load()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createTestService(t *testing.T, db *gorm.DB, price float64) models.Service {
	t.Helper()

	service := models.Service{
		Name:     "Deep Cleansing Facial",
		NameAr:   "تنظيف البشرة العميق",
		Category: models.CategoryFacial,
		Price:    price,
		Duration: 60,
		IsActive: true,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("create test service: %v", err)
	}
	return service
}

func createTestDiscount(t *testing.T, db *gorm.DB, code models.DiscountCode) models.DiscountCode {
	t.Helper()

	if code.ValidFrom.IsZero() {
		code.ValidFrom = time.Now().Add(-24 * time.Hour)
	}
	if code.ValidTo.IsZero() {
		code.ValidTo = time.Now().Add(24 * time.Hour)
	}
	wantActive := code.IsActive
	if err := db.Create(&code).Error; err != nil {
		t.Fatalf("create test discount code: %v", err)
	}
	if !wantActive {
		// Create skips zero-value fields, so the column's default:true would
		// win; force the requested value.
		if err := db.Model(&code).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate test discount code: %v", err)
		}
		code.IsActive = false
	}
	return code
}
