package routes

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
	"beauty-clinic-server/services"
)

// RegisterAdminAuthRoutes registers back-office authentication (no auth middleware)
func RegisterAdminAuthRoutes(router *gin.RouterGroup) {
	router.POST("/login", adminLogin)
	router.POST("/refresh", adminRefreshToken)
}

// RegisterAdminRoutes registers the rest of the back office (behind AdminAuthMiddleware)
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", getCurrentAdmin)
	router.GET("/dashboard/stats", getDashboardStats)
	router.GET("/clients", getAllClients)
	router.GET("/clients/:id", getClientById)
}

// adminLogin authenticates a back-office user and issues a token pair
func adminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	jwtService := services.NewJWTService()

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		log.Printf("🔍 Admin login attempt with unknown email: %s", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsActive {
		log.Printf("🚫 Login attempt on deactivated account: %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
		return
	}

	if !user.IsAdmin() {
		log.Printf("🚫 Non-admin login attempt on admin endpoint: %d", user.ID)
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	if !jwtService.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Printf("❌ Invalid password for admin: %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenPair, err := jwtService.GenerateTokenPair(user.ID, models.PrincipalAdmin, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		log.Printf("❌ Token generation failed for admin %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	log.Printf("✅ Admin signed in: %d", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":   user,
			"tokens": tokenPair,
		},
	})
}

// adminRefreshToken exchanges a refresh token for a new access token
func adminRefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	jwtService := services.NewJWTService()

	tokenPair, err := jwtService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		log.Printf("❌ Admin token refresh failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"tokens": tokenPair}})
}

// getCurrentAdmin returns the authenticated back-office user
func getCurrentAdmin(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// getDashboardStats aggregates the numbers shown on the admin dashboard
func getDashboardStats(c *gin.Context) {
	stats := gin.H{}

	var totalBookings int64
	if err := database.DB.Model(&models.Booking{}).Count(&totalBookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	stats["total_bookings"] = totalBookings

	byStatus := gin.H{}
	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	} {
		var n int64
		database.DB.Model(&models.Booking{}).Where("status = ?", status).Count(&n)
		byStatus[string(status)] = n
	}
	stats["bookings_by_status"] = byStatus

	today := time.Now().Truncate(24 * time.Hour)
	var todayBookings int64
	database.DB.Model(&models.Booking{}).
		Where("date >= ? AND date < ?", today, today.Add(24*time.Hour)).
		Count(&todayBookings)
	stats["today_bookings"] = todayBookings

	var totalClients int64
	database.DB.Model(&models.Client{}).Count(&totalClients)
	stats["total_clients"] = totalClients

	var activePlans int64
	database.DB.Model(&models.TreatmentPlan{}).
		Where("status = ?", models.PlanStatusActive).
		Count(&activePlans)
	stats["active_treatment_plans"] = activePlans

	// Revenue counts completed bookings at their discounted price
	var revenue float64
	database.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusCompleted).
		Select("COALESCE(SUM(price - discount_amount), 0)").
		Scan(&revenue)
	stats["revenue"] = revenue

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// getAllClients lists clients with pagination and name/phone/email search
func getAllClients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	search := strings.TrimSpace(c.Query("search"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := database.DB.Model(&models.Client{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count clients"})
		return
	}

	var clients []models.Client
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&clients).Error; err != nil {
		log.Printf("❌ Failed to fetch clients: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients":    clients,
		"pagination": gin.H{"page": page, "limit": limit, "total": total},
	})
}

// getClientById returns one client with their bookings and plans
func getClientById(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}

	var client models.Client
	if err := database.DB.
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("TreatmentPlans", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&client, clientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}
