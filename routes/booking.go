package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"beauty-clinic-server/database"
	"beauty-clinic-server/middleware"
	"beauty-clinic-server/models"
	"beauty-clinic-server/services"
	ws "beauty-clinic-server/websocket"
)

var bookingFeed *ws.Hub

// SetBookingFeed wires the admin dashboard hub into booking creation
func SetBookingFeed(hub *ws.Hub) {
	bookingFeed = hub
}

// bookingPayload is the public booking form body. Binding "required" treats
// an empty string the same as a missing field.
type bookingPayload struct {
	ClientName    string  `json:"client_name" binding:"required"`
	ClientPhone   string  `json:"client_phone" binding:"required"`
	ClientEmail   string  `json:"client_email" binding:"omitempty,email"`
	ServiceID     uint    `json:"service_id" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	Time          string  `json:"time" binding:"required"`
	Notes         *string `json:"notes"`
	TotalSessions int     `json:"total_sessions"`
	DiscountCode  string  `json:"discount_code"`
}

// RegisterBookingRoutes registers the public booking endpoint
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.POST("", createBooking)
}

// RegisterClientBookingRoutes registers portal booking routes (authenticated)
func RegisterClientBookingRoutes(router *gin.RouterGroup) {
	router.GET("/bookings", getOwnBookings)
	router.POST("/bookings", createBooking)
	router.POST("/bookings/:id/cancel", cancelOwnBooking)
}

// RegisterAdminBookingRoutes registers booking management under the admin group
func RegisterAdminBookingRoutes(router *gin.RouterGroup) {
	router.GET("/bookings", getAllBookings)
	router.GET("/bookings/:id", getBooking)
	router.PATCH("/bookings/:id/status", updateBookingStatus)
	router.DELETE("/bookings/:id", deleteBooking)
}

// createBooking handles the booking form, anonymous or signed in
func createBooking(c *gin.Context) {
	var req bookingPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": "يرجى تعبئة جميع الحقول المطلوبة",
			"code":    "validation_failed",
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date",
			"message": "صيغة التاريخ غير صحيحة",
			"code":    "validation_failed",
		})
		return
	}

	input := services.BookingInput{
		ClientName:    middleware.SanitizeInput(req.ClientName),
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		ServiceID:     req.ServiceID,
		Date:          date,
		Time:          req.Time,
		Notes:         req.Notes,
		TotalSessions: req.TotalSessions,
		DiscountCode:  req.DiscountCode,
	}

	// Signed-in portal clients book against their own profile
	if clientID := c.GetUint("client_id"); clientID != 0 {
		input.ClientID = &clientID
	}

	result, err := services.NewBookingService().CreateBooking(input)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	log.Printf("✅ Booking %d created for service %d", result.Booking.ID, result.Booking.ServiceID)

	if bookingFeed != nil {
		bookingFeed.Announce("booking_created", result.Booking)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "تم إنشاء الحجز بنجاح",
		"booking":        result.Booking,
		"treatment_plan": result.TreatmentPlan,
	})
}

// respondBookingError maps workflow errors to HTTP responses with stable codes
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "الخدمة المطلوبة غير موجودة",
			"code":    "service_not_found",
		})
	case errors.Is(err, services.ErrPlanRequiresEmail):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Email is required for multi-session bookings",
			"message": "البريد الإلكتروني مطلوب لحجز خطة علاجية",
			"code":    "validation_failed",
		})
	case errors.Is(err, services.ErrCodeNotFound), errors.Is(err, services.ErrCodeInactive):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid discount code",
			"message": "كود الخصم غير صالح",
			"code":    "invalid_code",
		})
	case errors.Is(err, services.ErrCodeOutOfWindow):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Discount code expired",
			"message": "انتهت صلاحية كود الخصم",
			"code":    "code_expired",
		})
	case errors.Is(err, services.ErrCodeWrongService):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Discount code not valid for this service",
			"message": "كود الخصم غير صالح لهذه الخدمة",
			"code":    "code_wrong_service",
		})
	case errors.Is(err, services.ErrCodeAlreadyUsed):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Discount code already used",
			"message": "تم استخدام كود الخصم من قبل",
			"code":    "code_already_used",
		})
	default:
		log.Printf("❌ Booking creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "حدث خطأ أثناء إنشاء الحجز، يرجى المحاولة لاحقاً",
			"code":    "internal_error",
		})
	}
}

// getOwnBookings returns the signed-in client's bookings
func getOwnBookings(c *gin.Context) {
	clientID := c.GetUint("client_id")

	var bookings []models.Booking
	if err := database.DB.Where("client_id = ?", clientID).
		Preload("Service").
		Order("date DESC, created_at DESC").
		Find(&bookings).Error; err != nil {
		log.Printf("❌ Failed to fetch bookings for client %d: %v", clientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// cancelOwnBooking cancels the client's booking, only while it is pending
func cancelOwnBooking(c *gin.Context) {
	clientID := c.GetUint("client_id")

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	if err := database.DB.Where("id = ? AND client_id = ?", bookingID, clientID).First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "لم يتم العثور على الحجز",
		})
		return
	}

	if !booking.Status.CanBeCancelledByClient() {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Booking cannot be cancelled",
			"message": "لا يمكن إلغاء هذا الحجز في حالته الحالية",
			"code":    "not_cancellable",
			"status":  booking.Status,
		})
		return
	}

	booking.Status = models.BookingStatusCancelled
	if err := database.DB.Save(&booking).Error; err != nil {
		log.Printf("❌ Failed to cancel booking %d: %v", booking.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}

	log.Printf("✅ Booking %d cancelled by client %d", booking.ID, clientID)

	if bookingFeed != nil {
		bookingFeed.Announce("booking_cancelled", booking)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "تم إلغاء الحجز",
		"booking": booking,
	})
}

// getAllBookings returns bookings for the back office, filterable and paginated
func getAllBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	status := c.Query("status")
	date := c.Query("date")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Booking{})
	if status != "" {
		if !models.BookingStatus(status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date filter"})
			return
		}
		query = query.Where("date >= ? AND date < ?", day, day.Add(24*time.Hour))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count bookings"})
		return
	}

	var bookings []models.Booking
	if err := query.Preload("Service").Preload("Client").
		Order("date DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// getBooking returns one booking with its relations (admin)
func getBooking(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("Client").First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// updateBookingStatus writes a new status (admin). Any value in the shared
// enum is accepted; the state machine only restricts client cancellation.
func updateBookingStatus(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	status := models.BookingStatus(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Invalid status",
			"statuses": []models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCompleted, models.BookingStatusCancelled},
		})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	previous := booking.Status
	booking.Status = status
	if err := database.DB.Save(&booking).Error; err != nil {
		log.Printf("❌ Failed to update booking %d status: %v", booking.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}

	log.Printf("✅ Booking %d status: %s → %s", booking.ID, previous, status)

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

// deleteBooking removes a booking (admin)
func deleteBooking(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if err := database.DB.Delete(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
