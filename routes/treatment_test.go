package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"beauty-clinic-server/models"
)

func newBackOfficeRouter() *gin.Engine {
	router := gin.New()
	admin := router.Group("/api/v1/admin")
	RegisterAdminTreatmentRoutes(admin)
	return router
}

func createPlanWithSessions(t *testing.T, db *gorm.DB, clientID uint, total int, scheduled int) models.TreatmentPlan {
	t.Helper()

	plan := models.TreatmentPlan{
		ClientID:      clientID,
		TotalSessions: total,
		Status:        models.PlanStatusActive,
	}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("create plan: %v", err)
	}

	for i := 1; i <= scheduled; i++ {
		session := models.TreatmentSession{
			TreatmentPlanID: plan.ID,
			ClientID:        clientID,
			SessionNumber:   i,
			Date:            time.Now().Add(time.Duration(i) * 24 * time.Hour),
			Time:            "12:00",
			Status:          models.SessionStatusScheduled,
		}
		if err := db.Create(&session).Error; err != nil {
			t.Fatalf("create session %d: %v", i, err)
		}
	}
	return plan
}

func TestCompletingSessionAdvancesPlan(t *testing.T) {
	db := setupTestDB(t)
	client := createClient(t, db, "sara@example.com")
	plan := createPlanWithSessions(t, db, client.ID, 2, 2)

	var first models.TreatmentSession
	if err := db.Where("treatment_plan_id = ? AND session_number = 1", plan.ID).First(&first).Error; err != nil {
		t.Fatalf("load first session: %v", err)
	}

	router := newBackOfficeRouter()

	body, _ := json.Marshal(map[string]string{"status": "completed", "results": "Skin responded well"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/admin/sessions/%d", first.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var stored models.TreatmentPlan
	if err := db.First(&stored, plan.ID).Error; err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if stored.CompletedSessions != 1 {
		t.Errorf("completed sessions = %d, want 1", stored.CompletedSessions)
	}
	if stored.Status != models.PlanStatusActive {
		t.Errorf("plan status = %s, want active (one session left)", stored.Status)
	}
}

func TestCompletingLastSessionCompletesPlan(t *testing.T) {
	db := setupTestDB(t)
	client := createClient(t, db, "sara@example.com")
	plan := createPlanWithSessions(t, db, client.ID, 1, 1)

	var session models.TreatmentSession
	if err := db.Where("treatment_plan_id = ?", plan.ID).First(&session).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}

	router := newBackOfficeRouter()

	body, _ := json.Marshal(map[string]string{"status": "completed"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/admin/sessions/%d", session.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var stored models.TreatmentPlan
	if err := db.First(&stored, plan.ID).Error; err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if stored.Status != models.PlanStatusCompleted {
		t.Errorf("plan status = %s, want completed", stored.Status)
	}
}

func TestCompletingSessionTwiceCountsOnce(t *testing.T) {
	db := setupTestDB(t)
	client := createClient(t, db, "sara@example.com")
	plan := createPlanWithSessions(t, db, client.ID, 3, 1)

	var session models.TreatmentSession
	if err := db.Where("treatment_plan_id = ?", plan.ID).First(&session).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}

	router := newBackOfficeRouter()
	body, _ := json.Marshal(map[string]string{"status": "completed"})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/admin/sessions/%d", session.ID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("pass %d status = %d, want 200, body: %s", i+1, w.Code, w.Body.String())
		}
	}

	var stored models.TreatmentPlan
	if err := db.First(&stored, plan.ID).Error; err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if stored.CompletedSessions != 1 {
		t.Errorf("completed sessions = %d, want 1 (idempotent)", stored.CompletedSessions)
	}
}

func TestSchedulingBeyondPlanRejected(t *testing.T) {
	db := setupTestDB(t)
	client := createClient(t, db, "sara@example.com")
	plan := createPlanWithSessions(t, db, client.ID, 2, 2)

	router := newBackOfficeRouter()

	body, _ := json.Marshal(map[string]string{
		"date": time.Now().Add(96 * time.Hour).Format("2006-01-02"),
		"time": "11:00",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/admin/treatment-plans/%d/sessions", plan.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "plan_full" {
		t.Errorf("error code = %q, want plan_full", resp.Code)
	}
}

func TestSecondReportForSessionRejected(t *testing.T) {
	db := setupTestDB(t)
	client := createClient(t, db, "sara@example.com")
	plan := createPlanWithSessions(t, db, client.ID, 1, 1)

	var session models.TreatmentSession
	if err := db.Where("treatment_plan_id = ?", plan.ID).First(&session).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}

	router := newBackOfficeRouter()
	body, _ := json.Marshal(map[string]string{"report_text": "Visible improvement after the first session"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/admin/sessions/%d/report", session.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("first report status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	// The session now points at its report
	if err := db.First(&session, session.ID).Error; err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if session.ReportID == nil {
		t.Fatal("session.report_id was not back-filled")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/admin/sessions/%d/report", session.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("second report status = %d, want 409, body: %s", w.Code, w.Body.String())
	}
}

func TestClientCannotReadOthersPlan(t *testing.T) {
	db := setupTestDB(t)
	owner := createClient(t, db, "owner@example.com")
	intruder := createClient(t, db, "intruder@example.com")
	plan := createPlanWithSessions(t, db, owner.ID, 2, 1)

	router := newPortalRouter(intruder.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/client/treatment-plans/%d", plan.ID), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body: %s", w.Code, w.Body.String())
	}
}
