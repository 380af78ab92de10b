package providers

import (
	"context"
	"fmt"
)

// Identity is the normalized profile returned by an identity provider.
// Both fields are always set on a non-nil Identity.
type Identity struct {
	Email      string
	ExternalID string
}

// Strategy is the set of operations the login flow needs from one identity
// provider.
type Strategy interface {
	Name() string
	AuthorizationURL() string
	ExchangeCode(ctx context.Context, code string) (string, error)
	// FetchProfile returns (nil, nil) for an empty access token.
	FetchProfile(ctx context.Context, accessToken string) (*Identity, error)
	LogoutURL(postLogoutRedirect string) string
}

// ConfigurationError names the first required provider setting that is missing.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("identity provider is not configured: %s is required", e.Field)
}

// TokenExchangeError is returned when the token endpoint rejects the
// authorization code or cannot be reached. Body holds the provider's raw
// response when there was one.
type TokenExchangeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token exchange failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("token exchange failed: %v", e.Err)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

type ProfileFetchError struct {
	Reason string
	Err    error
}

func (e *ProfileFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("profile fetch failed: %s: %v", e.Reason, e.Err)
	}
	return "profile fetch failed: " + e.Reason
}

func (e *ProfileFetchError) Unwrap() error {
	return e.Err
}
