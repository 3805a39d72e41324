package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"beauty-clinic-server/config"
	"beauty-clinic-server/models"
	"beauty-clinic-server/utils"
)

func newProtectedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestClientAuthRejectsMissingToken(t *testing.T) {
	config.Load()
	router := newProtectedRouter(ClientAuthMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestClientAuthRejectsGarbageToken(t *testing.T) {
	config.Load()
	router := newProtectedRouter(ClientAuthMiddleware())

	// Unparseable tokens get a clean 401 instead of a panic
	for _, token := range []string{"garbage", "a.b.c", "Bearer", "%%%%"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, w.Code)
		}
	}
}

func TestClientAuthRejectsGarbageCookie(t *testing.T) {
	config.Load()
	router := newProtectedRouter(ClientAuthMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: ClientSessionCookie, Value: "not-a-jwt"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestClientAuthRejectsAdminToken(t *testing.T) {
	config.Load()
	router := newProtectedRouter(ClientAuthMiddleware())

	token, err := utils.GenerateToken(1, string(models.PrincipalAdmin))
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAdminAuthRejectsClientToken(t *testing.T) {
	config.Load()
	router := newProtectedRouter(AdminAuthMiddleware())

	token, err := utils.GenerateToken(1, string(models.PrincipalClient))
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}
