package session

import (
	"errors"

	"assoblog/internal/entity"
	"assoblog/internal/repo/persistent"
	"assoblog/pkg/logger"

	"gorm.io/gorm"
)

// RoleResolver maps an authenticated identity to its role.
type RoleResolver interface {
	Resolve(identityID string) entity.Role
}

// Resolver reads the user record for an identity. An absent record means the
// identity was provisioned recently and reads as viewer. An unreachable store
// also degrades to viewer: the default on uncertainty is the least-privileged
// role, never author or admin.
//
// The resolved role is a cached projection: it stays valid until the session
// context re-initializes or an admin mutates the role in the same client.
// Another client changing the role mid-session is only observed on the next
// initialization.
type Resolver struct {
	users  persistent.UserRepository
	logger *logger.Logger
}

func NewResolver(users persistent.UserRepository, logger *logger.Logger) *Resolver {
	return &Resolver{users: users, logger: logger}
}

func (r *Resolver) Resolve(identityID string) entity.Role {
	user, err := r.users.GetByID(identityID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("Role lookup failed for %s, degrading to viewer: %v", identityID, err)
		}
		return entity.RoleViewer
	}

	if !entity.ValidRole(string(user.Role)) {
		r.logger.Warn("User %s has unknown role %q, degrading to viewer", identityID, user.Role)
		return entity.RoleViewer
	}
	return user.Role
}
