package entity

import "time"

type Role string

const (
	RoleViewer Role = "viewer"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether s is a member of the closed role enumeration.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleViewer, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

// RoleSet is a set-valued capability requirement. Membership is exact: admin
// does not implicitly satisfy an author-only requirement.
type RoleSet []Role

func (rs RoleSet) Contains(r Role) bool {
	for _, candidate := range rs {
		if candidate == r {
			return true
		}
	}
	return false
}

// Identity is proof of authentication issued by the identity store.
type Identity struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

// User is the authorization attribute record read by the role resolver.
// It is distinct from Identity and may not exist yet for a fresh sign-up.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
