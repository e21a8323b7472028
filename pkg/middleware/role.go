package middleware

import (
	"net/http"

	"assoblog/internal/entity"
	"assoblog/internal/session"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route behind a set of acceptable roles. It adapts the
// authorization guard's decision to HTTP and mutates nothing: an
// authenticated session with the wrong role gets 403 and the unauthorized
// redirect target, never a sign-in redirect.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	required := entity.RoleSet(roles)
	return func(c *gin.Context) {
		var sess *entity.Session
		if v, ok := c.Get(SessionKey); ok {
			sess, _ = v.(*entity.Session)
		}
		role := entity.Role(c.GetString(RoleKey))

		decision := session.Authorize(required, sess, role, c.Request.URL.RequestURI())
		if decision.Allowed {
			c.Next()
			return
		}

		status := http.StatusForbidden
		if sess == nil {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"error":    "insufficient permissions",
			"redirect": decision.Redirect,
		})
		c.Abort()
	}
}
