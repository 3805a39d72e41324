package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"beauty-clinic-server/config"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return false
	}
	switch h.Header.Get("Content-Type") {
	case "image/jpeg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}

// RegisterAdminMediaRoutes adds the image upload endpoint under the admin group.
// Uploaded images end up on service cards and treatment reports.
func RegisterAdminMediaRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload/image", uploadImage)
}

func uploadImage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	log.Printf("📸 Received image: %s, size: %d", header.Filename, header.Size)

	// Reject before touching Cloudinary
	if !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Only JPEG, PNG or WebP images up to 5MB are accepted",
			"code":  "invalid_image",
		})
		return
	}

	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		log.Printf("❌ Cloudinary is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image storage not configured"})
		return
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image storage unavailable"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image file"})
		return
	}
	defer file.Close()

	ow := true
	uf := true
	up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:         cfg.Folder,
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &ow,
		UniqueFilename: &uf,
		ResourceType:   "image",
	})
	if err != nil {
		log.Printf("❌ Image upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image upload failed"})
		return
	}

	log.Printf("✅ Image uploaded: %s", up.SecureURL)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"url":       up.SecureURL,
			"public_id": up.PublicID,
		},
	})
}
