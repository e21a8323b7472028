package usecase

import (
	"testing"

	"assoblog/internal/entity"
	"assoblog/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateRole_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := NewUserUseCase(mockUsers, nil, logger.New())

	mockUsers.On("UpdateRole", "user-123", entity.RoleAuthor).Return(int64(1), nil)
	mockUsers.On("GetByID", "user-123").Return(&entity.User{
		ID:   "user-123",
		Role: entity.RoleAuthor,
	}, nil)

	user, err := uc.UpdateRole("user-123", entity.RoleAuthor, entity.RoleAdmin)

	assert.NoError(t, err)
	assert.Equal(t, entity.RoleAuthor, user.Role)
	mockUsers.AssertExpectations(t)
}

func TestUpdateRole_NonAdminDenied(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := NewUserUseCase(mockUsers, nil, logger.New())

	user, err := uc.UpdateRole("user-123", entity.RoleAuthor, entity.RoleAuthor)

	assert.Nil(t, user)
	var permErr *entity.PermissionError
	assert.ErrorAs(t, err, &permErr)
	mockUsers.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything)
}

func TestUpdateRole_InvalidRole(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := NewUserUseCase(mockUsers, nil, logger.New())

	user, err := uc.UpdateRole("user-123", entity.Role("superuser"), entity.RoleAdmin)

	assert.Nil(t, user)
	var valErr *entity.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"role"}, valErr.Fields)
	mockUsers.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything)
}

func TestUpdateRole_UserNotFound(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := NewUserUseCase(mockUsers, nil, logger.New())

	mockUsers.On("UpdateRole", "missing", entity.RoleAuthor).Return(int64(0), nil)

	user, err := uc.UpdateRole("missing", entity.RoleAuthor, entity.RoleAdmin)

	assert.Nil(t, user)
	var nfErr *entity.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
	mockUsers.AssertExpectations(t)
}

func TestListUsers(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := NewUserUseCase(mockUsers, nil, logger.New())

	users := []*entity.User{
		{ID: "user-1", Role: entity.RoleAdmin},
		{ID: "user-2", Role: entity.RoleViewer},
	}
	mockUsers.On("List", 20, 0).Return(users, nil)

	result, err := uc.ListUsers(20, 0)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	mockUsers.AssertExpectations(t)
}
