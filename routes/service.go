package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
)

// RegisterServiceRoutes registers the public catalog routes
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("", getAllServices)
	router.GET("/:id", getService)
	router.GET("/category/:category", getServicesByCategory)
}

// RegisterAdminServiceRoutes registers service CRUD under the admin group
func RegisterAdminServiceRoutes(router *gin.RouterGroup) {
	router.GET("/services", getAllServicesForAdmin)
	router.POST("/services", createService)
	router.PUT("/services/:id", updateService)
	router.DELETE("/services/:id", deleteService)
}

// getAllServices returns all active services
func getAllServices(c *gin.Context) {
	var services []models.Service
	if err := database.DB.Where("is_active = ?", true).Order("category, price").Find(&services).Error; err != nil {
		log.Printf("❌ Failed to fetch services: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// getService returns a specific service by ID
func getService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": service})
}

// getServicesByCategory returns active services in one category.
// The category is checked against the shared enum, not a per-route list.
func getServicesByCategory(c *gin.Context) {
	category := models.ServiceCategory(c.Param("category"))
	if !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid category",
			"categories": models.ServiceCategories,
		})
		return
	}

	var services []models.Service
	if err := database.DB.Where("category = ? AND is_active = ?", category, true).Order("price").Find(&services).Error; err != nil {
		log.Printf("❌ Failed to fetch services for category %s: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// getAllServicesForAdmin returns every service, inactive ones included
func getAllServicesForAdmin(c *gin.Context) {
	var services []models.Service
	if err := database.DB.Order("created_at DESC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// createService creates a new service (admin only)
func createService(c *gin.Context) {
	var request models.ServicePayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.ServiceCategory(request.Category)
	if !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid category",
			"categories": models.ServiceCategories,
		})
		return
	}

	service := models.Service{
		Name:          request.Name,
		NameAr:        request.NameAr,
		Description:   request.Description,
		DescriptionAr: request.DescriptionAr,
		Category:      category,
		Price:         request.Price,
		Duration:      request.Duration,
		ImageURL:      request.ImageURL,
		IsActive:      true,
	}

	if err := database.DB.Create(&service).Error; err != nil {
		log.Printf("❌ Failed to create service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Service created successfully", "service": service})
}

// updateService updates an existing service (admin only)
func updateService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var request models.ServicePayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.ServiceCategory(request.Category)
	if !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid category",
			"categories": models.ServiceCategories,
		})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	service.Name = request.Name
	service.NameAr = request.NameAr
	service.Description = request.Description
	service.DescriptionAr = request.DescriptionAr
	service.Category = category
	service.Price = request.Price
	service.Duration = request.Duration
	if request.ImageURL != "" {
		service.ImageURL = request.ImageURL
	}

	if err := database.DB.Save(&service).Error; err != nil {
		log.Printf("❌ Failed to update service %d: %v", serviceID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service updated successfully", "service": service})
}

// deleteService soft-deletes a service (admin only). Refused while bookings
// still reference it so booking history never points at a missing row.
func deleteService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var bookingCount int64
	if err := database.DB.Model(&models.Booking{}).Where("service_id = ?", serviceID).Count(&bookingCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check bookings"})
		return
	}
	if bookingCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Service has bookings",
			"message": "Deactivate the service instead of deleting it while bookings reference it",
			"code":    "service_in_use",
		})
		return
	}

	// Soft delete
	database.DB.Delete(&service)
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
