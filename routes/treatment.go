package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
)

// RegisterClientTreatmentRoutes registers portal views over the client's own
// plans, sessions and reports.
func RegisterClientTreatmentRoutes(router *gin.RouterGroup) {
	router.GET("/treatment-plans", getOwnTreatmentPlans)
	router.GET("/treatment-plans/:id", getOwnTreatmentPlan)
	router.GET("/sessions/:id/report", getOwnSessionReport)
}

// RegisterAdminTreatmentRoutes registers treatment management under the admin group
func RegisterAdminTreatmentRoutes(router *gin.RouterGroup) {
	router.GET("/treatment-plans", getAllTreatmentPlans)
	router.POST("/treatment-plans", createTreatmentPlan)
	router.PUT("/treatment-plans/:id", updateTreatmentPlan)
	router.POST("/treatment-plans/:id/sessions", createTreatmentSession)
	router.PUT("/sessions/:id", updateTreatmentSession)
	router.POST("/sessions/:id/report", createTreatmentReport)
	router.PUT("/reports/:id", updateTreatmentReport)
}

// getOwnTreatmentPlans lists the signed-in client's plans
func getOwnTreatmentPlans(c *gin.Context) {
	clientID := c.GetUint("client_id")

	var plans []models.TreatmentPlan
	if err := database.DB.Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		log.Printf("❌ Failed to fetch plans for client %d: %v", clientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch treatment plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"treatment_plans": plans})
}

// getOwnTreatmentPlan returns one plan with its sessions, owner only
func getOwnTreatmentPlan(c *gin.Context) {
	clientID := c.GetUint("client_id")

	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var plan models.TreatmentPlan
	if err := database.DB.Where("id = ? AND client_id = ?", planID, clientID).
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_number")
		}).
		First(&plan).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Treatment plan not found",
			"message": "لم يتم العثور على الخطة العلاجية",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"treatment_plan": plan})
}

// getOwnSessionReport returns the report of one of the client's sessions
func getOwnSessionReport(c *gin.Context) {
	clientID := c.GetUint("client_id")

	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var session models.TreatmentSession
	if err := database.DB.Where("id = ? AND client_id = ?", sessionID, clientID).First(&session).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if session.ReportID == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "No report for this session yet",
			"message": "لا يوجد تقرير لهذه الجلسة بعد",
		})
		return
	}

	var report models.TreatmentReport
	if err := database.DB.First(&report, *session.ReportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// getAllTreatmentPlans lists plans for the back office
func getAllTreatmentPlans(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := database.DB.Model(&models.TreatmentPlan{})
	if status != "" {
		if !models.TreatmentPlanStatus(status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count treatment plans"})
		return
	}

	var plans []models.TreatmentPlan
	if err := query.Preload("Client").Preload("Sessions").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch treatment plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"treatment_plans": plans,
		"pagination":      gin.H{"page": page, "limit": limit, "total": total},
	})
}

// createTreatmentPlan creates a plan directly (admin), outside the booking flow
func createTreatmentPlan(c *gin.Context) {
	var req struct {
		ClientID      uint    `json:"client_id" binding:"required"`
		TotalSessions int     `json:"total_sessions" binding:"required,gt=0"`
		Notes         *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client
	if err := database.DB.First(&client, req.ClientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	plan := models.TreatmentPlan{
		ClientID:      req.ClientID,
		TotalSessions: req.TotalSessions,
		Status:        models.PlanStatusActive,
		Notes:         req.Notes,
	}

	if err := database.DB.Create(&plan).Error; err != nil {
		log.Printf("❌ Failed to create treatment plan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create treatment plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Treatment plan created successfully", "treatment_plan": plan})
}

// updateTreatmentPlan updates plan status and notes (admin)
func updateTreatmentPlan(c *gin.Context) {
	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var req struct {
		Status        string  `json:"status"`
		TotalSessions *int    `json:"total_sessions"`
		Notes         *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var plan models.TreatmentPlan
	if err := database.DB.First(&plan, planID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Treatment plan not found"})
		return
	}

	if req.Status != "" {
		status := models.TreatmentPlanStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan status"})
			return
		}
		plan.Status = status
	}
	if req.TotalSessions != nil {
		if *req.TotalSessions < plan.CompletedSessions {
			c.JSON(http.StatusBadRequest, gin.H{"error": "total_sessions cannot be below completed_sessions"})
			return
		}
		plan.TotalSessions = *req.TotalSessions
	}
	if req.Notes != nil {
		plan.Notes = req.Notes
	}

	if err := database.DB.Save(&plan).Error; err != nil {
		log.Printf("❌ Failed to update treatment plan %d: %v", planID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update treatment plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "treatment_plan": plan})
}

// createTreatmentSession schedules the next session of a plan (admin).
// Sessions are created one by one; only the first one is auto-created with
// the plan during booking.
func createTreatmentSession(c *gin.Context) {
	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var req struct {
		Date  string  `json:"date" binding:"required"`
		Time  string  `json:"time" binding:"required"`
		Notes *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	var plan models.TreatmentPlan
	if err := database.DB.First(&plan, planID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Treatment plan not found"})
		return
	}

	if plan.Status != models.PlanStatusActive {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Plan is not active",
			"code":  "plan_not_active",
		})
		return
	}

	var sessionCount int64
	if err := database.DB.Model(&models.TreatmentSession{}).
		Where("treatment_plan_id = ?", plan.ID).
		Count(&sessionCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count sessions"})
		return
	}
	if int(sessionCount) >= plan.TotalSessions {
		c.JSON(http.StatusConflict, gin.H{
			"error": "All sessions of this plan are already scheduled",
			"code":  "plan_full",
		})
		return
	}

	session := models.TreatmentSession{
		TreatmentPlanID: plan.ID,
		ClientID:        plan.ClientID,
		SessionNumber:   int(sessionCount) + 1,
		Date:            date,
		Time:            req.Time,
		Status:          models.SessionStatusScheduled,
		Notes:           req.Notes,
	}

	if err := database.DB.Create(&session).Error; err != nil {
		log.Printf("❌ Failed to create session for plan %d: %v", plan.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Session created successfully", "session": session})
}

// updateTreatmentSession updates a session (admin). Completing a session
// increments the plan's completed_sessions and completes the plan once every
// session is done; plan and session move together in one transaction.
func updateTreatmentSession(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var req struct {
		Status             string  `json:"status"`
		Date               string  `json:"date"`
		Time               string  `json:"time"`
		Notes              *string `json:"notes"`
		TreatmentPerformed string  `json:"treatment_performed"`
		Results            string  `json:"results"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var session models.TreatmentSession
	if err := database.DB.First(&session, sessionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var newStatus models.SessionStatus
	if req.Status != "" {
		newStatus = models.SessionStatus(req.Status)
		if !newStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session status"})
			return
		}
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		session.Date = date
	}
	if req.Time != "" {
		session.Time = req.Time
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	if req.TreatmentPerformed != "" {
		session.TreatmentPerformed = req.TreatmentPerformed
	}
	if req.Results != "" {
		session.Results = req.Results
	}

	completing := newStatus == models.SessionStatusCompleted && session.Status != models.SessionStatusCompleted
	if newStatus != "" {
		session.Status = newStatus
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		if completing {
			var plan models.TreatmentPlan
			if err := tx.First(&plan, session.TreatmentPlanID).Error; err != nil {
				return err
			}
			plan.CompletedSessions++
			if plan.CompletedSessions >= plan.TotalSessions {
				plan.Status = models.PlanStatusCompleted
			}
			if err := tx.Save(&plan).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Printf("❌ Failed to update session %d: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// createTreatmentReport writes the clinic's report for a session (admin) and
// back-fills the session's report_id in the same transaction.
func createTreatmentReport(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var req struct {
		ReportText string `json:"report_text" binding:"required"`
		ImageURL   string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_text is required"})
		return
	}

	var session models.TreatmentSession
	if err := database.DB.First(&session, sessionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if session.ReportID != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Session already has a report",
			"code":  "report_exists",
		})
		return
	}

	report := models.TreatmentReport{
		TreatmentSessionID: session.ID,
		ReportText:         req.ReportText,
		ImageURL:           req.ImageURL,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		session.ReportID = &report.ID
		return tx.Save(&session).Error
	})
	if err != nil {
		log.Printf("❌ Failed to create report for session %d: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Report created successfully", "report": report})
}

// updateTreatmentReport updates an existing report (admin)
func updateTreatmentReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	var req struct {
		ReportText string `json:"report_text" binding:"required"`
		ImageURL   string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_text is required"})
		return
	}

	var report models.TreatmentReport
	if err := database.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	report.ReportText = req.ReportText
	if req.ImageURL != "" {
		report.ImageURL = req.ImageURL
	}

	if err := database.DB.Save(&report).Error; err != nil {
		log.Printf("❌ Failed to update report %d: %v", reportID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}
