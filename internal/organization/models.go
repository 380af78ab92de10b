package organization

import (
	"time"

	"sso-server/internal/user"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

type Organization struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	APIKey     string    `json:"-"`
	AllowTrial bool      `json:"allow_trial"`
	CreatedAt  time.Time `json:"created_at"`
}

type Membership struct {
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           Role      `json:"role"`
}

// NewAccount describes a user signing up together with their own
// organization. PasswordHash is empty for identity-provider users.
type NewAccount struct {
	Company      string
	Email        string
	PasswordHash string
	Provider     user.Provider
	ProviderID   string
	Activated    bool
}

// Created is the outcome of CreateOrgAndUser. The user is the organization's
// SUPERADMIN.
type Created struct {
	Organization *Organization
	User         *user.User
}

// Link is the result of adding a user to an existing organization.
type Link struct {
	OrganizationID string `json:"organizationId"`
}
