package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
	"beauty-clinic-server/services"
)

// RegisterDiscountRoutes registers the client-facing discount quote endpoint
func RegisterDiscountRoutes(router *gin.RouterGroup) {
	router.POST("/discount", quoteDiscount)
}

// RegisterAdminDiscountRoutes registers discount code CRUD under the admin group
func RegisterAdminDiscountRoutes(router *gin.RouterGroup) {
	router.GET("/discount-codes", getAllDiscountCodes)
	router.POST("/discount-codes", createDiscountCode)
	router.PUT("/discount-codes/:id", updateDiscountCode)
	router.DELETE("/discount-codes/:id", deleteDiscountCode)
}

// quoteDiscount validates a code for a service and returns the price breakdown.
// Runs behind client auth so the reuse check knows who is asking.
func quoteDiscount(c *gin.Context) {
	var req struct {
		Code      string `json:"code" binding:"required"`
		ServiceID uint   `json:"service_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": "يرجى إدخال كود الخصم والخدمة",
			"code":    "validation_failed",
		})
		return
	}

	clientID := c.GetUint("client_id")

	quote, err := services.NewDiscountService().Quote(req.Code, req.ServiceID, &clientID, time.Now())
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"code":            quote.Code,
		"original_price":  quote.OriginalPrice,
		"discount_amount": quote.DiscountAmount,
		"final_price":     quote.FinalPrice,
	})
}

// discountCodePayload is the admin request body for discount codes
type discountCodePayload struct {
	Code          string  `json:"code" binding:"required"`
	DiscountType  string  `json:"discount_type" binding:"required"`
	DiscountValue float64 `json:"discount_value" binding:"required,gt=0"`
	IsActive      *bool   `json:"is_active"`
	ValidFrom     string  `json:"valid_from" binding:"required"`
	ValidTo       string  `json:"valid_to" binding:"required"`
	ServiceID     *uint   `json:"service_id"`
}

func (p *discountCodePayload) parse() (*models.DiscountCode, string) {
	discountType := models.DiscountType(p.DiscountType)
	if !discountType.IsValid() {
		return nil, "discount_type must be percentage or flat"
	}
	if discountType == models.DiscountTypePercentage && p.DiscountValue > 100 {
		return nil, "percentage discount cannot exceed 100"
	}

	validFrom, err := time.Parse(time.RFC3339, p.ValidFrom)
	if err != nil {
		return nil, "valid_from must be an RFC3339 timestamp"
	}
	validTo, err := time.Parse(time.RFC3339, p.ValidTo)
	if err != nil {
		return nil, "valid_to must be an RFC3339 timestamp"
	}
	if validTo.Before(validFrom) {
		return nil, "valid_to must be after valid_from"
	}

	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}

	return &models.DiscountCode{
		Code:          p.Code,
		DiscountType:  discountType,
		DiscountValue: p.DiscountValue,
		IsActive:      active,
		ValidFrom:     validFrom,
		ValidTo:       validTo,
		ServiceID:     p.ServiceID,
	}, ""
}

// getAllDiscountCodes lists every discount code (admin)
func getAllDiscountCodes(c *gin.Context) {
	var codes []models.DiscountCode
	if err := database.DB.Preload("Service").Order("created_at DESC").Find(&codes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discount codes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"discount_codes": codes})
}

// createDiscountCode creates a discount code (admin)
func createDiscountCode(c *gin.Context) {
	var req discountCodePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, problem := req.parse()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	if code.ServiceID != nil {
		var service models.Service
		if err := database.DB.First(&service, *code.ServiceID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scoped service not found"})
			return
		}
	}

	if err := database.DB.Create(code).Error; err != nil {
		log.Printf("❌ Failed to create discount code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create discount code"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Discount code created successfully", "discount_code": code})
}

// updateDiscountCode updates a discount code (admin)
func updateDiscountCode(c *gin.Context) {
	codeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount code ID"})
		return
	}

	var req discountCodePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, problem := req.parse()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	var existing models.DiscountCode
	if err := database.DB.First(&existing, codeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount code not found"})
		return
	}

	existing.Code = parsed.Code
	existing.DiscountType = parsed.DiscountType
	existing.DiscountValue = parsed.DiscountValue
	existing.IsActive = parsed.IsActive
	existing.ValidFrom = parsed.ValidFrom
	existing.ValidTo = parsed.ValidTo
	existing.ServiceID = parsed.ServiceID

	if err := database.DB.Save(&existing).Error; err != nil {
		log.Printf("❌ Failed to update discount code %d: %v", codeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update discount code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Discount code updated successfully", "discount_code": existing})
}

// deleteDiscountCode deletes a discount code (admin)
func deleteDiscountCode(c *gin.Context) {
	codeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount code ID"})
		return
	}

	var code models.DiscountCode
	if err := database.DB.First(&code, codeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount code not found"})
		return
	}

	if err := database.DB.Delete(&code).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete discount code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Discount code deleted successfully"})
}
