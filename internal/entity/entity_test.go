package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("viewer"))
	assert.True(t, ValidRole("author"))
	assert.True(t, ValidRole("admin"))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("Admin"))
}

func TestRoleSet_Contains(t *testing.T) {
	set := RoleSet{RoleAuthor, RoleAdmin}

	assert.True(t, set.Contains(RoleAuthor))
	assert.True(t, set.Contains(RoleAdmin))
	assert.False(t, set.Contains(RoleViewer))
	assert.False(t, RoleSet{}.Contains(RoleAdmin))
}

func TestAuthError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAuthError(AuthNetwork, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "network")
}

func TestValidationError_ListsFields(t *testing.T) {
	err := &ValidationError{Fields: []string{"title", "content"}}

	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "content")
}

func TestPermissionError_NamesRoleAndAction(t *testing.T) {
	err := &PermissionError{Role: RoleViewer, Action: "submit posts"}

	assert.Contains(t, err.Error(), "viewer")
	assert.Contains(t, err.Error(), "submit posts")
}

func TestInvalidTransitionError(t *testing.T) {
	err := &InvalidTransitionError{Target: StatusPending}

	assert.Contains(t, err.Error(), "pending")
}
