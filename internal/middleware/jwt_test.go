package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.MustGet("role")})
	})
	return r
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	w := request(protectedRouter(RequireAuth()), token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	w := request(protectedRouter(RequireAuth()), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthGarbageToken(t *testing.T) {
	w := request(protectedRouter(RequireAuth()), "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthWithRole(t *testing.T) {
	adminToken, err := GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	userToken, err := GenerateToken(2, "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	r := protectedRouter(RequireAuthWithRole("admin"))

	if w := request(r, adminToken); w.Code != http.StatusOK {
		t.Errorf("admin token: status = %d, want 200", w.Code)
	}
	if w := request(r, userToken); w.Code != http.StatusForbidden {
		t.Errorf("user token: status = %d, want 403", w.Code)
	}
}

func TestRequireAuthWithRoleBlocksHandlerForWrongRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlerRan := false
	r.POST("/admin/stops", RequireAuthWithRole("admin"), func(c *gin.Context) {
		handlerRan = true
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	userToken, err := GenerateToken(7, "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/stops", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if handlerRan {
		t.Error("mutation handler ran for a non-admin token")
	}
}
