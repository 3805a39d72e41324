package jobs

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

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.Load()

	dsn := fmt.Sprintf("file:jobs_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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

func TestSweepMissedSessions(t *testing.T) {
	db := setupTestDB(t)

	client := models.Client{Name: "Sara", Email: "sara@example.com", Phone: "0500000000", IsActive: true}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	plan := models.TreatmentPlan{ClientID: client.ID, TotalSessions: 3, Status: models.PlanStatusActive}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("create plan: %v", err)
	}

	now := time.Now()
	past := models.TreatmentSession{
		TreatmentPlanID: plan.ID, ClientID: client.ID, SessionNumber: 1,
		Date: now.Add(-48 * time.Hour), Time: "10:00", Status: models.SessionStatusScheduled,
	}
	upcoming := models.TreatmentSession{
		TreatmentPlanID: plan.ID, ClientID: client.ID, SessionNumber: 2,
		Date: now.Add(48 * time.Hour), Time: "10:00", Status: models.SessionStatusScheduled,
	}
	pastCompleted := models.TreatmentSession{
		TreatmentPlanID: plan.ID, ClientID: client.ID, SessionNumber: 3,
		Date: now.Add(-72 * time.Hour), Time: "10:00", Status: models.SessionStatusCompleted,
	}
	for _, s := range []*models.TreatmentSession{&past, &upcoming, &pastCompleted} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	NewSweeperJob().SweepMissedSessions(now)

	check := func(id uint, want models.SessionStatus) {
		var s models.TreatmentSession
		if err := db.First(&s, id).Error; err != nil {
			t.Fatalf("reload session %d: %v", id, err)
		}
		if s.Status != want {
			t.Errorf("session %d status = %s, want %s", id, s.Status, want)
		}
	}

	check(past.ID, models.SessionStatusMissed)
	check(upcoming.ID, models.SessionStatusScheduled)
	check(pastCompleted.ID, models.SessionStatusCompleted)
}

func TestSweepExpiredDiscounts(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	expired := models.DiscountCode{
		Code: "OLD", DiscountType: models.DiscountTypeFlat, DiscountValue: 10,
		IsActive: true, ValidFrom: now.Add(-48 * time.Hour), ValidTo: now.Add(-1 * time.Hour),
	}
	current := models.DiscountCode{
		Code: "FRESH", DiscountType: models.DiscountTypeFlat, DiscountValue: 10,
		IsActive: true, ValidFrom: now.Add(-1 * time.Hour), ValidTo: now.Add(48 * time.Hour),
	}
	for _, dc := range []*models.DiscountCode{&expired, &current} {
		if err := db.Create(dc).Error; err != nil {
			t.Fatalf("create discount code: %v", err)
		}
	}

	NewSweeperJob().SweepExpiredDiscounts(now)

	var stored models.DiscountCode
	if err := db.First(&stored, expired.ID).Error; err != nil {
		t.Fatalf("reload expired code: %v", err)
	}
	if stored.IsActive {
		t.Error("expired code is still active after sweep")
	}

	var storedCurrent models.DiscountCode
	if err := db.First(&storedCurrent, current.ID).Error; err != nil {
		t.Fatalf("reload current code: %v", err)
	}
	if !storedCurrent.IsActive {
		t.Error("current code was deactivated by sweep")
	}
}
