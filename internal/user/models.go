package user

import (
	"time"

	"github.com/google/uuid"
)

// Provider records how a user authenticates.
type Provider string

const (
	// ProviderGeneric users sign in through the configured identity provider.
	ProviderGeneric Provider = "GENERIC"
	// ProviderLocal users sign in with a password stored here.
	ProviderLocal Provider = "LOCAL"
)

func (p Provider) String() string {
	return string(p)
}

func (p Provider) IsValid() bool {
	return p == ProviderGeneric || p == ProviderLocal
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	ProviderName Provider  `json:"provider_name"`
	ProviderID   string    `json:"provider_id"`
	Activated    bool      `json:"activated"`
	IP           string    `json:"-"`
	Agent        string    `json:"-"`
	InviteID     *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser holds the columns written when a user row is inserted.
type NewUser struct {
	Email        string
	PasswordHash *string
	ProviderName Provider
	ProviderID   string
	Activated    bool
	IP           string
	Agent        string
}
