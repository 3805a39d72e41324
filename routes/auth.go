package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"beauty-clinic-server/database"
	"beauty-clinic-server/middleware"
	"beauty-clinic-server/models"
	"beauty-clinic-server/services"
)

const sessionCookieMaxAge = 7 * 24 * 3600 // 7 days

// RegisterClientAuthRoutes registers client registration, login and profile
// routes under /client.
func RegisterClientAuthRoutes(router *gin.RouterGroup) {
	jwtService := services.NewJWTService()

	// Register endpoint. No session is issued; the client signs in afterwards.
	router.POST("/register", func(c *gin.Context) {
		var req struct {
			Name     string `json:"name" binding:"required,min=2,max=100"`
			Email    string `json:"email" binding:"required,email"`
			Phone    string `json:"phone" binding:"required"`
			Password string `json:"password" binding:"required,min=8,max=128"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": "يرجى التحقق من البيانات المدخلة",
			})
			return
		}

		req.Name = middleware.SanitizeInput(req.Name)
		email := strings.ToLower(strings.TrimSpace(req.Email))

		isStrong, details := middleware.ValidatePasswordStrength(req.Password)
		if !isStrong {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Weak password",
				"message": "كلمة المرور ضعيفة",
				"details": details,
			})
			return
		}

		hashedPassword, err := jwtService.HashPassword(req.Password)
		if err != nil {
			log.Printf("❌ Password hashing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "حدث خطأ، يرجى المحاولة لاحقاً",
			})
			return
		}

		// A walk-in profile created during an anonymous booking may already
		// exist for this email; registering claims it by setting a password.
		var existing models.Client
		if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
			if existing.IsRegistered() {
				c.JSON(http.StatusConflict, gin.H{
					"error":   "Client already exists",
					"message": "يوجد حساب مسجل بهذا البريد الإلكتروني",
				})
				return
			}
			existing.Name = req.Name
			existing.Phone = req.Phone
			existing.PasswordHash = hashedPassword
			if err := database.DB.Save(&existing).Error; err != nil {
				log.Printf("❌ Client claim failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "Internal server error",
					"message": "حدث خطأ، يرجى المحاولة لاحقاً",
				})
				return
			}
			log.Printf("✅ Walk-in client %d claimed by registration", existing.ID)
			c.JSON(http.StatusCreated, gin.H{
				"success": true,
				"message": "تم إنشاء الحساب بنجاح",
				"client":  existing,
			})
			return
		}

		client := models.Client{
			Name:         req.Name,
			Email:        email,
			Phone:        req.Phone,
			PasswordHash: hashedPassword,
			IsActive:     true,
		}

		if err := database.DB.Create(&client).Error; err != nil {
			log.Printf("❌ Client creation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "حدث خطأ، يرجى المحاولة لاحقاً",
			})
			return
		}

		log.Printf("✅ Client registered: %d", client.ID)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "تم إنشاء الحساب بنجاح",
			"client":  client,
		})
	})

	// Login endpoint: returns a token pair and sets the session cookie for
	// browser flows.
	router.POST("/login", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": "يرجى التحقق من البيانات المدخلة",
			})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var client models.Client
		if err := database.DB.Where("email = ?", email).First(&client).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid credentials",
				"message": "البريد الإلكتروني أو كلمة المرور غير صحيحة",
			})
			return
		}

		if !client.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Account deactivated",
				"message": "تم تعطيل هذا الحساب",
			})
			return
		}

		if !client.IsRegistered() || !jwtService.CheckPasswordHash(req.Password, client.PasswordHash) {
			log.Printf("❌ Invalid password for client: %d", client.ID)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid credentials",
				"message": "البريد الإلكتروني أو كلمة المرور غير صحيحة",
			})
			return
		}

		tokenPair, err := jwtService.GenerateTokenPair(client.ID, models.PrincipalClient, c.GetHeader("User-Agent"), c.ClientIP())
		if err != nil {
			log.Printf("❌ Token generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "حدث خطأ، يرجى المحاولة لاحقاً",
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.ClientSessionCookie, tokenPair.AccessToken, sessionCookieMaxAge, "/", "", false, true)

		log.Printf("✅ Client signed in: %d", client.ID)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "تم تسجيل الدخول بنجاح",
			"data": gin.H{
				"client": client,
				"tokens": tokenPair,
			},
		})
	})

	// Refresh token endpoint
	router.POST("/refresh", func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		tokenPair, err := jwtService.RefreshAccessToken(req.RefreshToken)
		if err != nil {
			log.Printf("❌ Token refresh failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid refresh token",
				"message": "انتهت صلاحية الجلسة، يرجى تسجيل الدخول مجدداً",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"tokens": tokenPair},
		})
	})

	// Logout endpoint: revokes refresh tokens and clears the cookie
	router.POST("/logout", middleware.ClientAuthMiddleware(), func(c *gin.Context) {
		clientID := c.GetUint("client_id")

		if err := jwtService.RevokeAllTokens(clientID, models.PrincipalClient); err != nil {
			log.Printf("⚠️ Failed to revoke tokens for client %d: %v", clientID, err)
		}

		c.SetCookie(middleware.ClientSessionCookie, "", -1, "/", "", false, true)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "تم تسجيل الخروج",
		})
	})

	// Current profile
	router.GET("/me", middleware.ClientAuthMiddleware(), func(c *gin.Context) {
		clientID := c.GetUint("client_id")

		var client models.Client
		if err := database.DB.First(&client, clientID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Client not found",
				"message": "لم يتم العثور على الحساب",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "client": client})
	})

	// Profile update
	router.PUT("/me", middleware.ClientAuthMiddleware(), func(c *gin.Context) {
		clientID := c.GetUint("client_id")

		var req struct {
			Name  string `json:"name" binding:"required,min=2,max=100"`
			Phone string `json:"phone" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": "يرجى التحقق من البيانات المدخلة",
			})
			return
		}

		var client models.Client
		if err := database.DB.First(&client, clientID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}

		client.Name = middleware.SanitizeInput(req.Name)
		client.Phone = strings.TrimSpace(req.Phone)

		if err := database.DB.Save(&client).Error; err != nil {
			log.Printf("❌ Profile update failed for client %d: %v", clientID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "حدث خطأ، يرجى المحاولة لاحقاً",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "client": client})
	})

	// Change password: verifies the current one and revokes all sessions
	router.POST("/change-password", middleware.ClientAuthMiddleware(), func(c *gin.Context) {
		clientID := c.GetUint("client_id")

		var req struct {
			CurrentPassword string `json:"current_password" binding:"required"`
			NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": "يرجى التحقق من البيانات المدخلة",
			})
			return
		}

		var client models.Client
		if err := database.DB.First(&client, clientID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}

		if !jwtService.CheckPasswordHash(req.CurrentPassword, client.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid current password",
				"message": "كلمة المرور الحالية غير صحيحة",
			})
			return
		}

		isStrong, details := middleware.ValidatePasswordStrength(req.NewPassword)
		if !isStrong {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Weak password",
				"message": "كلمة المرور الجديدة ضعيفة",
				"details": details,
			})
			return
		}

		hashedPassword, err := jwtService.HashPassword(req.NewPassword)
		if err != nil {
			log.Printf("❌ Password hashing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		client.PasswordHash = hashedPassword
		if err := database.DB.Save(&client).Error; err != nil {
			log.Printf("❌ Password update failed for client %d: %v", clientID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if err := jwtService.RevokeAllTokens(clientID, models.PrincipalClient); err != nil {
			log.Printf("⚠️ Failed to revoke tokens after password change: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "تم تغيير كلمة المرور، يرجى تسجيل الدخول مجدداً",
		})
	})
}
