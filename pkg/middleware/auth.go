package middleware

import (
	"net/http"
	"strings"

	"assoblog/internal/session"
	"assoblog/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	SessionKey = "session"
	UserIDKey  = "user_id"
	EmailKey   = "email"
	RoleKey    = "role"
)

// AuthMiddleware validates the bearer token and loads the session it names
// into the request context. Deny responses carry the sign-in redirect target
// with the originally requested path preserved.
func AuthMiddleware(jwtService *jwt.Service, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.Request.URL.RequestURI()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			denyUnauthenticated(c, "authentication required", requested)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			denyUnauthenticated(c, "invalid authorization header", requested)
			return
		}
		token := parts[1]

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			denyUnauthenticated(c, "invalid or expired token", requested)
			return
		}

		if redisClient != nil {
			revoked, err := redisClient.Exists(c.Request.Context(), jwt.RevocationKey(claims.ID)).Result()
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session check failed"})
				c.Abort()
				return
			}
			if revoked > 0 {
				denyUnauthenticated(c, "session revoked", requested)
				return
			}
		}

		c.Set(SessionKey, session.FromClaims(token, claims))
		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

func denyUnauthenticated(c *gin.Context, message, requested string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":    message,
		"redirect": session.SignInRedirect(requested),
	})
	c.Abort()
}
