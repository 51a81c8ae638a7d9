package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleEntrepreneur UserRole = "entrepreneur"
	UserRoleInvestor     UserRole = "investor"
	UserRoleAdmin        UserRole = "admin"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleEntrepreneur, UserRoleInvestor, UserRoleAdmin:
		return true
	}
	return false
}

// User is an identity managed by the identity provider
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	Role         UserRole    `json:"role"`
	FullName     null.String `json:"full_name"`
	Company      null.String `json:"company"`
	CreatedAt    time.Time   `json:"created_at"`
	LastSignInAt null.Time   `json:"last_sign_in_at"`
}

// UpdateUserInput patches role and display name metadata
type UpdateUserInput struct {
	Role     *UserRole `json:"role"`
	FullName *string   `json:"full_name"`
}

// AuthContext is the verified caller of a request
type AuthContext struct {
	UserID        uuid.UUID
	Email         string
	Role          UserRole
	FullName      string
	Authenticated bool
}

// Anonymous returns the context used for callers without a session
func Anonymous() *AuthContext {
	return &AuthContext{}
}

// IsAdmin reports whether the caller holds the admin role
func (a *AuthContext) IsAdmin() bool {
	return a != nil && a.Authenticated && a.Role == UserRoleAdmin
}

// IsInvestor reports whether the caller holds the investor role
func (a *AuthContext) IsInvestor() bool {
	return a != nil && a.Authenticated && a.Role == UserRoleInvestor
}

// HasRole reports whether the authenticated caller holds one of roles
func (a *AuthContext) HasRole(roles ...UserRole) bool {
	if a == nil || !a.Authenticated {
		return false
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// EffectiveRole is the role used for visibility decisions; anonymous callers have none
func (a *AuthContext) EffectiveRole() UserRole {
	if a == nil || !a.Authenticated {
		return ""
	}
	return a.Role
}
