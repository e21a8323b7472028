package http

import (
	"errors"
	"net/http"

	"assoblog/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Failures
// are surfaced per-action and never take the session down with them.
func respondError(c *gin.Context, err error) {
	var (
		permErr *entity.PermissionError
		valErr  *entity.ValidationError
		invErr  *entity.InvalidTransitionError
		nfErr   *entity.NotFoundError
		authErr *entity.AuthError
	)

	switch {
	case errors.Is(err, entity.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &permErr):
		c.JSON(http.StatusForbidden, gin.H{"error": permErr.Error()})
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": valErr.Error(), "fields": valErr.Fields})
	case errors.As(err, &invErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": invErr.Error()})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
	case errors.As(err, &authErr):
		switch authErr.Kind {
		case entity.AuthInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		case entity.AuthNetwork:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "identity store unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
