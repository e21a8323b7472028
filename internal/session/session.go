package session

import (
	"assoblog/internal/entity"
	"assoblog/pkg/jwt"
)

// FromClaims rebuilds the session a validated token names.
func FromClaims(token string, claims *jwt.Claims) *entity.Session {
	sess := &entity.Session{
		Identity: entity.Identity{
			ID:       claims.UserID,
			Email:    claims.Email,
			IssuedAt: claims.IssuedAt.Time,
		},
		Token:    token,
		IssuedAt: claims.IssuedAt.Time,
	}
	if claims.ExpiresAt != nil {
		expiry := claims.ExpiresAt.Time
		sess.ExpiresAt = &expiry
	}
	return sess
}
