package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"assoblog/internal/entity"
	"assoblog/internal/repo/persistent"
	"assoblog/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RoleChangeChannel carries role mutations so other processes holding a
// cached role for the same identity can invalidate it. Subscribing is
// optional: the baseline staleness contract only requires same-client
// invalidation.
const RoleChangeChannel = "role_changes"

// UserUseCase is the admin-facing role management surface over the user
// records the role resolver reads.
type UserUseCase interface {
	ListUsers(limit, offset int) ([]*entity.User, error)
	UpdateRole(userID string, role entity.Role, actorRole entity.Role) (*entity.User, error)
}

type userUseCase struct {
	users       persistent.UserRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewUserUseCase(users persistent.UserRepository, redisClient *redis.Client, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		users:       users,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *userUseCase) ListUsers(limit, offset int) ([]*entity.User, error) {
	return uc.users.List(limit, offset)
}

func (uc *userUseCase) UpdateRole(userID string, role entity.Role, actorRole entity.Role) (*entity.User, error) {
	if actorRole != entity.RoleAdmin {
		return nil, &entity.PermissionError{Role: actorRole, Action: "manage user roles"}
	}
	if !entity.ValidRole(string(role)) {
		return nil, &entity.ValidationError{Fields: []string{"role"}}
	}

	rows, err := uc.users.UpdateRole(userID, role)
	if err != nil {
		uc.logger.Error("Failed to update role for user %s: %v", userID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, &entity.NotFoundError{Resource: "user", ID: userID}
	}

	uc.publishRoleChange(userID, role)

	user, err := uc.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &entity.NotFoundError{Resource: "user", ID: userID}
		}
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) publishRoleChange(userID string, role entity.Role) {
	if uc.redisClient == nil {
		return
	}

	payload, _ := json.Marshal(map[string]string{
		"user_id": userID,
		"role":    string(role),
	})
	ctx := context.Background()
	if err := uc.redisClient.Publish(ctx, RoleChangeChannel, payload).Err(); err != nil {
		uc.logger.Warn("Failed to publish role change for user %s: %v", userID, err)
	}
}
