package services

import (
	"errors"
	"testing"
	"time"

	"beauty-clinic-server/models"
)

func TestCreateBookingWithPlanAndFirstSession(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 350)

	result, err := NewBookingService().CreateBooking(BookingInput{
		ClientName:    "Sara",
		ClientPhone:   "0500000000",
		ClientEmail:   "sara@example.com",
		ServiceID:     service.ID,
		Date:          time.Now().Add(48 * time.Hour),
		Time:          "14:30",
		TotalSessions: 4,
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if result.Booking.Status != models.BookingStatusPending {
		t.Errorf("booking status = %s, want pending", result.Booking.Status)
	}
	if result.TreatmentPlan == nil {
		t.Fatal("expected a treatment plan")
	}
	if result.TreatmentPlan.TotalSessions != 4 {
		t.Errorf("plan total sessions = %d, want 4", result.TreatmentPlan.TotalSessions)
	}
	if result.TreatmentPlan.CompletedSessions != 0 {
		t.Errorf("plan completed sessions = %d, want 0", result.TreatmentPlan.CompletedSessions)
	}
	if result.TreatmentPlan.Status != models.PlanStatusActive {
		t.Errorf("plan status = %s, want active", result.TreatmentPlan.Status)
	}

	var sessions []models.TreatmentSession
	if err := db.Where("treatment_plan_id = ?", result.TreatmentPlan.ID).Find(&sessions).Error; err != nil {
		t.Fatalf("fetch sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("session count = %d, want exactly 1", len(sessions))
	}
	if sessions[0].SessionNumber != 1 {
		t.Errorf("session number = %d, want 1", sessions[0].SessionNumber)
	}
	if sessions[0].Status != models.SessionStatusScheduled {
		t.Errorf("session status = %s, want scheduled", sessions[0].Status)
	}
}

func TestCreateBookingWithoutSessionsCreatesNoPlan(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 350)

	result, err := NewBookingService().CreateBooking(BookingInput{
		ClientName:  "Sara",
		ClientPhone: "0500000000",
		ClientEmail: "sara@example.com",
		ServiceID:   service.ID,
		Date:        time.Now().Add(24 * time.Hour),
		Time:        "10:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if result.TreatmentPlan != nil {
		t.Error("expected no treatment plan for a single visit")
	}

	var planCount int64
	db.Model(&models.TreatmentPlan{}).Count(&planCount)
	if planCount != 0 {
		t.Errorf("plan count = %d, want 0", planCount)
	}
}

func TestCreateBookingReusesWalkInProfile(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 350)
	svc := NewBookingService()

	input := BookingInput{
		ClientName:  "Sara",
		ClientPhone: "0500000000",
		ClientEmail: "Sara@Example.com",
		ServiceID:   service.ID,
		Date:        time.Now().Add(24 * time.Hour),
		Time:        "10:00",
	}

	first, err := svc.CreateBooking(input)
	if err != nil {
		t.Fatalf("first CreateBooking returned error: %v", err)
	}
	second, err := svc.CreateBooking(input)
	if err != nil {
		t.Fatalf("second CreateBooking returned error: %v", err)
	}

	var clientCount int64
	db.Model(&models.Client{}).Count(&clientCount)
	if clientCount != 1 {
		t.Errorf("client count = %d, want 1 (same email reuses the profile)", clientCount)
	}

	if first.Booking.ClientID == nil || second.Booking.ClientID == nil {
		t.Fatal("expected both bookings to carry a client id")
	}
	if *first.Booking.ClientID != *second.Booking.ClientID {
		t.Errorf("bookings attached to different clients: %d vs %d", *first.Booking.ClientID, *second.Booking.ClientID)
	}

	// Email was normalized on the way in
	if first.Booking.ClientEmail != "sara@example.com" {
		t.Errorf("stored email = %q, want sara@example.com", first.Booking.ClientEmail)
	}
}

func TestCreateBookingSessionsWithoutEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 350)

	_, err := NewBookingService().CreateBooking(BookingInput{
		ClientName:    "Sara",
		ClientPhone:   "0500000000",
		ServiceID:     service.ID,
		Date:          time.Now().Add(48 * time.Hour),
		Time:          "14:30",
		TotalSessions: 4,
	})
	if !errors.Is(err, ErrPlanRequiresEmail) {
		t.Fatalf("CreateBooking error = %v, want ErrPlanRequiresEmail", err)
	}

	// Nothing was written
	var bookingCount, planCount int64
	db.Model(&models.Booking{}).Count(&bookingCount)
	db.Model(&models.TreatmentPlan{}).Count(&planCount)
	if bookingCount != 0 || planCount != 0 {
		t.Errorf("booking count = %d, plan count = %d, want 0 and 0", bookingCount, planCount)
	}
}

func TestCreateBookingRollsBackWhenPlanInsertFails(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 350)

	// Force the plan insert to fail after the booking row is written
	if err := db.Migrator().DropTable(&models.TreatmentPlan{}); err != nil {
		t.Fatalf("drop treatment_plans: %v", err)
	}

	_, err := NewBookingService().CreateBooking(BookingInput{
		ClientName:    "Sara",
		ClientPhone:   "0500000000",
		ClientEmail:   "sara@example.com",
		ServiceID:     service.ID,
		Date:          time.Now().Add(48 * time.Hour),
		Time:          "14:30",
		TotalSessions: 4,
	})
	if err == nil {
		t.Fatal("expected CreateBooking to fail when the plan cannot be written")
	}

	var bookingCount int64
	db.Model(&models.Booking{}).Count(&bookingCount)
	if bookingCount != 0 {
		t.Errorf("booking count = %d, want 0 (transaction rolled back)", bookingCount)
	}
}

func TestCreateBookingInactiveServiceRejected(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 350)
	if err := db.Model(&models.Service{}).Where("id = ?", service.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate service: %v", err)
	}

	_, err := NewBookingService().CreateBooking(BookingInput{
		ClientName:  "Sara",
		ClientPhone: "0500000000",
		ServiceID:   service.ID,
		Date:        time.Now().Add(24 * time.Hour),
		Time:        "10:00",
	})
	if !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("CreateBooking error = %v, want ErrServiceNotFound", err)
	}
}

func TestCreateBookingAppliesDiscountSnapshot(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 200)
	createTestDiscount(t, db, models.DiscountCode{
		Code:          "SUMMER20",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 20,
		IsActive:      true,
	})

	result, err := NewBookingService().CreateBooking(BookingInput{
		ClientName:   "Sara",
		ClientPhone:  "0500000000",
		ClientEmail:  "sara@example.com",
		ServiceID:    service.ID,
		Date:         time.Now().Add(24 * time.Hour),
		Time:         "10:00",
		DiscountCode: "summer20",
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if result.Booking.DiscountCode != "SUMMER20" {
		t.Errorf("stored discount code = %q, want SUMMER20", result.Booking.DiscountCode)
	}
	if result.Booking.DiscountAmount != 40 {
		t.Errorf("discount amount = %v, want 40", result.Booking.DiscountAmount)
	}
	if result.Booking.FinalPrice() != 160 {
		t.Errorf("final price = %v, want 160", result.Booking.FinalPrice())
	}
}

func TestCreateBookingRejectsUsedCode(t *testing.T) {
	db := setupTestDB(t)
	service := createTestService(t, db, 200)
	createTestDiscount(t, db, models.DiscountCode{
		Code:          "ONCE",
		DiscountType:  models.DiscountTypeFlat,
		DiscountValue: 50,
		IsActive:      true,
	})

	svc := NewBookingService()
	input := BookingInput{
		ClientName:   "Sara",
		ClientPhone:  "0500000000",
		ClientEmail:  "sara@example.com",
		ServiceID:    service.ID,
		Date:         time.Now().Add(24 * time.Hour),
		Time:         "10:00",
		DiscountCode: "ONCE",
	}

	if _, err := svc.CreateBooking(input); err != nil {
		t.Fatalf("first CreateBooking returned error: %v", err)
	}

	_, err := svc.CreateBooking(input)
	if !errors.Is(err, ErrCodeAlreadyUsed) {
		t.Errorf("second CreateBooking error = %v, want ErrCodeAlreadyUsed", err)
	}

	// The rejected attempt left no booking behind
	var bookingCount int64
	db.Model(&models.Booking{}).Count(&bookingCount)
	if bookingCount != 1 {
		t.Errorf("booking count = %d, want 1", bookingCount)
	}
}
