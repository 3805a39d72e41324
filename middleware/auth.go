package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
	"beauty-clinic-server/utils"
)

// ClientSessionCookie is the one canonical session cookie name. The site the
// clinic ran before drifted between "client-session" and "client_session"
// across routes, which made some of them reject valid logins; every route
// now reads this single name through this middleware.
const ClientSessionCookie = "client_session"

// tokenFromRequest extracts the access token from the Authorization header,
// falling back to the session cookie for browser form flows.
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}
		return ""
	}
	if cookie, err := c.Cookie(ClientSessionCookie); err == nil {
		return cookie
	}
	return ""
}

// ClientAuthMiddleware validates the session token and loads the client.
// Missing or unparseable credentials are a 401, never a panic.
func ClientAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "يرجى تسجيل الدخول للمتابعة",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			log.Printf("🔍 ClientAuthMiddleware: token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "انتهت صلاحية الجلسة، يرجى تسجيل الدخول مجدداً",
			})
			c.Abort()
			return
		}

		if claims.Kind != string(models.PrincipalClient) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Client access required",
				"message": "هذه الصفحة مخصصة للعملاء",
			})
			c.Abort()
			return
		}

		var client models.Client
		if err := database.DB.First(&client, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Client not found",
				"message": "لم يتم العثور على الحساب",
			})
			c.Abort()
			return
		}

		if !client.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Account deactivated",
				"message": "تم تعطيل هذا الحساب",
			})
			c.Abort()
			return
		}

		c.Set("client", client)
		c.Set("client_id", client.ID)
		c.Next()
	}
}

// AdminAuthMiddleware validates the session token and requires the admin role
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			log.Printf("❌ AdminAuthMiddleware: token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims.Kind != string(models.PrincipalAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if user.Role != models.RoleAdmin {
			log.Printf("❌ User %d is not admin, role: %s", user.ID, user.Role)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}
