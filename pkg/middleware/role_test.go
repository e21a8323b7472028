package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assoblog/internal/entity"
	"assoblog/internal/session"
	"assoblog/pkg/jwt"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func authedRouter(role entity.Role, handler gin.HandlerFunc, roles ...entity.Role) *gin.Engine {
	router := setupTestRouter()
	router.Use(func(c *gin.Context) {
		now := time.Now()
		claims := &jwt.Claims{
			UserID: "user-123",
			Email:  "user@test.com",
			Role:   string(role),
			RegisteredClaims: jwtlib.RegisteredClaims{
				IssuedAt:  jwtlib.NewNumericDate(now),
				ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour)),
			},
		}
		c.Set(SessionKey, session.FromClaims("token", claims))
		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(RoleKey, claims.Role)
	})
	router.GET("/test", append([]gin.HandlerFunc{RequireRole(roles...)}, handler)...)
	return router
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func TestRequireRole_Allowed(t *testing.T) {
	router := authedRouter(entity.RoleAdmin, okHandler, entity.RoleAdmin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_AllowedViaSet(t *testing.T) {
	router := authedRouter(entity.RoleAuthor, okHandler, entity.RoleAuthor, entity.RoleAdmin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	router := authedRouter(entity.RoleViewer, okHandler, entity.RoleAdmin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, session.UnauthorizedTarget, response["redirect"])
}

func TestRequireRole_ExactMatchNotHierarchy(t *testing.T) {
	// Admin does not satisfy a check requiring exactly author
	router := authedRouter(entity.RoleAdmin, okHandler, entity.RoleAuthor)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_NoSession(t *testing.T) {
	router := setupTestRouter()
	router.GET("/test", RequireRole(entity.RoleAdmin), okHandler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "/login?next=%2Ftest", response["redirect"])
}
