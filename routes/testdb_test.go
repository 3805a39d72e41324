package routes

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
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

	gin.SetMode(gin.TestMode)
	config.Load()

	dsn := fmt.Sprintf("file:routes_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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

// newPortalRouter builds a router with the client portal routes mounted
// behind a stub that authenticates the given client id.
func newPortalRouter(clientID uint) *gin.Engine {
	router := gin.New()
	portal := router.Group("/api/v1/client")
	portal.Use(func(c *gin.Context) {
		c.Set("client_id", clientID)
		c.Next()
	})
	RegisterClientBookingRoutes(portal)
	RegisterClientTreatmentRoutes(portal)
	return router
}

func createClient(t *testing.T, db *gorm.DB, email string) models.Client {
	t.Helper()

	client := models.Client{Name: "Sara", Email: email, Phone: "0500000000", IsActive: true}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func createTestService(t *testing.T, db *gorm.DB) models.Service {
	t.Helper()

	service := models.Service{
		Name:     "Hydrafacial",
		NameAr:   "هيدرافيشل",
		Category: models.CategoryFacial,
		Price:    650,
		Duration: 75,
		IsActive: true,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return service
}
