package auth

import (
	"sso-server/internal/organization"

	"github.com/golang-jwt/jwt/v5"
)

// SessionOutcome is the result of resolving a callback. Exactly one field is
// set: Credential for a known user, ProvisioningToken (the provider access
// token) for someone who still needs an account.
type SessionOutcome struct {
	Credential        string
	ProvisioningToken string
}

func (o *SessionOutcome) NeedsProvisioning() bool {
	return o.ProvisioningToken != ""
}

// OrgHint is a pending organization invitation carried across the login
// redirect in the org cookie.
type OrgHint struct {
	OrganizationID string            `json:"organizationId"`
	Role           organization.Role `json:"role"`
	InvitationID   string            `json:"invitationId"`
}

type ProvisioningResult struct {
	Credential string
	// Organization is nil when no invitation was supplied or it could not
	// be used.
	Organization *organization.Link
}

type Claims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}
