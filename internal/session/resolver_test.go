package session

import (
	"errors"
	"testing"

	"assoblog/internal/entity"
	"assoblog/internal/repo/persistent"
	"assoblog/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(limit, offset int) ([]*entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(id string, role entity.Role) (int64, error) {
	args := m.Called(id, role)
	return args.Get(0).(int64), args.Error(1)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

func TestResolve_ExistingRecord(t *testing.T) {
	mockRepo := new(MockUserRepository)
	resolver := NewResolver(mockRepo, logger.New())

	mockRepo.On("GetByID", "user-123").Return(&entity.User{
		ID:   "user-123",
		Role: entity.RoleAdmin,
	}, nil)

	role := resolver.Resolve("user-123")

	assert.Equal(t, entity.RoleAdmin, role)
	mockRepo.AssertExpectations(t)
}

func TestResolve_AbsentRecord(t *testing.T) {
	mockRepo := new(MockUserRepository)
	resolver := NewResolver(mockRepo, logger.New())

	mockRepo.On("GetByID", "user-fresh").Return(nil, gorm.ErrRecordNotFound)

	// A freshly provisioned identity has no user record yet and reads as viewer
	role := resolver.Resolve("user-fresh")

	assert.Equal(t, entity.RoleViewer, role)
	mockRepo.AssertExpectations(t)
}

func TestResolve_StoreUnreachable(t *testing.T) {
	mockRepo := new(MockUserRepository)
	resolver := NewResolver(mockRepo, logger.New())

	mockRepo.On("GetByID", "user-123").Return(nil, errors.New("connection refused"))

	// Uncertainty degrades to the least-privileged role
	role := resolver.Resolve("user-123")

	assert.Equal(t, entity.RoleViewer, role)
	mockRepo.AssertExpectations(t)
}

func TestResolve_UnknownStoredRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	resolver := NewResolver(mockRepo, logger.New())

	mockRepo.On("GetByID", "user-123").Return(&entity.User{
		ID:   "user-123",
		Role: entity.Role("superuser"),
	}, nil)

	role := resolver.Resolve("user-123")

	assert.Equal(t, entity.RoleViewer, role)
	mockRepo.AssertExpectations(t)
}
