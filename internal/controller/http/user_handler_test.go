package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"assoblog/internal/entity"
	"assoblog/internal/usecase"
	"assoblog/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) ListUsers(limit, offset int) ([]*entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateRole(userID string, role entity.Role, actorRole entity.Role) (*entity.User, error) {
	args := m.Called(userID, role, actorRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

func TestListUsers_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/users", asIdentity(entity.RoleAdmin), handler.ListUsers)

	mockUsers := []*entity.User{
		{ID: "user-1", Email: "a@test.com", Role: entity.RoleAdmin},
		{ID: "user-2", Email: "b@test.com", Role: entity.RoleViewer},
	}
	mockUseCase.On("ListUsers", 20, 0).Return(mockUsers, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])
	mockUseCase.AssertExpectations(t)
}

func TestUpdateRole_HandlerSuccess(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/users/:id/role", asIdentity(entity.RoleAdmin), handler.UpdateRole)

	updated := &entity.User{ID: "user-456", Role: entity.RoleAuthor}
	mockUseCase.On("UpdateRole", "user-456", entity.RoleAuthor, entity.RoleAdmin).Return(updated, nil)

	body := `{"role":"author"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/users/user-456/role", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "author", response["role"])
	mockUseCase.AssertExpectations(t)
}

func TestUpdateRole_HandlerInvalidRole(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/users/:id/role", asIdentity(entity.RoleAdmin), handler.UpdateRole)

	valErr := &entity.ValidationError{Fields: []string{"role"}}
	mockUseCase.On("UpdateRole", "user-456", entity.Role("superuser"), entity.RoleAdmin).Return(nil, valErr)

	body := `{"role":"superuser"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/users/user-456/role", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response["fields"], "role")
	mockUseCase.AssertExpectations(t)
}

func TestUpdateRole_HandlerForbidden(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/users/:id/role", asIdentity(entity.RoleAuthor), handler.UpdateRole)

	permErr := &entity.PermissionError{Role: entity.RoleAuthor, Action: "manage user roles"}
	mockUseCase.On("UpdateRole", "user-456", entity.RoleViewer, entity.RoleAuthor).Return(nil, permErr)

	body := `{"role":"viewer"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/users/user-456/role", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateRole_HandlerNotFound(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/users/:id/role", asIdentity(entity.RoleAdmin), handler.UpdateRole)

	nfErr := &entity.NotFoundError{Resource: "user", ID: "missing"}
	mockUseCase.On("UpdateRole", "missing", entity.RoleAuthor, entity.RoleAdmin).Return(nil, nfErr)

	body := `{"role":"author"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/users/missing/role", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}
