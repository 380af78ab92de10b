package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"

	"sso-server/internal/auth/providers"
	"sso-server/internal/newsletter"
	"sso-server/internal/organization"
	"sso-server/internal/shared/errors"
	"sso-server/internal/shared/metrics"
	"sso-server/internal/user"

	"github.com/google/uuid"
)

type userFinder interface {
	FindByProviderIdentity(ctx context.Context, provider user.Provider, providerID string) (*user.User, error)
}

type accountProvisioner interface {
	CreateOrgAndUser(ctx context.Context, account organization.NewAccount, ip, userAgent string) (*organization.Created, error)
	AddUserToOrg(ctx context.Context, userID uuid.UUID, invitationID, organizationID string, role organization.Role) (*organization.Link, error)
}

type sessionSigner interface {
	Sign(u *user.User) (string, error)
}

// Service drives the identity provider login: code exchange, profile lookup,
// account provisioning and session issuance.
type Service struct {
	providers  *providers.Registry
	users      userFinder
	accounts   accountProvisioner
	signer     sessionSigner
	newsletter newsletter.Registrar
	metrics    *metrics.Auth
	logger     *slog.Logger
}

func NewService(
	registry *providers.Registry,
	users userFinder,
	accounts accountProvisioner,
	signer sessionSigner,
	registrar newsletter.Registrar,
	m *metrics.Auth,
	logger *slog.Logger,
) *Service {
	logger.Debug("Initializing auth service")

	return &Service{
		providers:  registry,
		users:      users,
		accounts:   accounts,
		signer:     signer,
		newsletter: registrar,
		metrics:    m,
		logger:     logger,
	}
}

func (s *Service) LoginURL(providerKey string) (string, error) {
	strategy, err := s.providers.Get(providerKey)
	if err != nil {
		return "", err
	}
	return strategy.AuthorizationURL(), nil
}

func (s *Service) LogoutURL(providerKey, postLogoutRedirect string) (string, error) {
	strategy, err := s.providers.Get(providerKey)
	if err != nil {
		return "", err
	}
	return strategy.LogoutURL(postLogoutRedirect), nil
}

// ResolveCallback exchanges code and looks the caller up by their provider
// identity. Known users get a signed credential; everyone else gets the
// access token back so the caller can provision them.
func (s *Service) ResolveCallback(ctx context.Context, providerKey, code string) (*SessionOutcome, error) {
	strategy, err := s.providers.Get(providerKey)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(
		"component", "auth_service",
		"operation", "resolve_callback",
		"provider", strategy.Name(),
	)

	token, err := strategy.ExchangeCode(ctx, code)
	if err != nil {
		s.metrics.Login(strategy.Name(), metrics.OutcomeFailed)
		return nil, err
	}

	identity, err := s.fetchProfile(ctx, strategy, token)
	if err != nil {
		s.metrics.Login(strategy.Name(), metrics.OutcomeFailed)
		return nil, err
	}

	existing, err := s.users.FindByProviderIdentity(ctx, user.ProviderGeneric, identity.ExternalID)
	if err != nil {
		s.metrics.Login(strategy.Name(), metrics.OutcomeFailed)
		return nil, err
	}

	if existing == nil {
		logger.Info("No account linked to provider identity, provisioning required",
			"external_id", identity.ExternalID)
		return &SessionOutcome{ProvisioningToken: token}, nil
	}

	credential, err := s.signer.Sign(existing)
	if err != nil {
		s.metrics.Login(strategy.Name(), metrics.OutcomeFailed)
		return nil, errors.WrapInternal("failed to issue session", err)
	}

	logger.Info("Existing user signed in", "user_id", existing.ID)
	s.metrics.Login(strategy.Name(), metrics.OutcomeExistingUser)

	return &SessionOutcome{Credential: credential}, nil
}

// FetchProfile returns the profile behind accessToken. An absent profile is
// a *providers.ProfileFetchError here.
func (s *Service) FetchProfile(ctx context.Context, providerKey, accessToken string) (*providers.Identity, error) {
	strategy, err := s.providers.Get(providerKey)
	if err != nil {
		return nil, err
	}
	return s.fetchProfile(ctx, strategy, accessToken)
}

func (s *Service) fetchProfile(ctx context.Context, strategy providers.Strategy, accessToken string) (*providers.Identity, error) {
	identity, err := strategy.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, &providers.ProfileFetchError{Reason: "provider returned no profile"}
	}
	return identity, nil
}

// ProvisionUser creates a user and their personal organization from profile,
// then joins the invited organization when hint is set. Newsletter
// registration failures are logged and ignored.
func (s *Service) ProvisionUser(
	ctx context.Context,
	providerKey string,
	profile *providers.Identity,
	ip, userAgent string,
	hint *OrgHint,
) (*ProvisioningResult, error) {
	strategy, err := s.providers.Get(providerKey)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(
		"component", "auth_service",
		"operation", "provision_user",
		"provider", strategy.Name(),
	)

	if profile == nil {
		s.metrics.Login(strategy.Name(), metrics.OutcomeFailed)
		return nil, &providers.ProfileFetchError{Reason: "provider returned no profile"}
	}

	created, err := s.accounts.CreateOrgAndUser(ctx, organization.NewAccount{
		Company:    "",
		Email:      profile.Email,
		Provider:   user.ProviderGeneric,
		ProviderID: profile.ExternalID,
	}, ip, userAgent)
	if err != nil {
		s.metrics.Login(strategy.Name(), metrics.OutcomeFailed)
		return nil, err
	}

	logger = logger.With("user_id", created.User.ID)

	if err := s.newsletter.Register(ctx, profile.Email); err != nil {
		logger.Warn("Newsletter registration failed", "error", err)
		s.metrics.NewsletterFailure()
	}

	var link *organization.Link
	if hint != nil {
		link, err = s.accounts.AddUserToOrg(ctx, created.User.ID, hint.InvitationID, hint.OrganizationID, hint.Role)
		if err != nil {
			s.metrics.Login(strategy.Name(), metrics.OutcomeFailed)
			return nil, err
		}
		s.metrics.OrganizationLink(link != nil)
		logger.Info("Processed organization invitation",
			"organization_id", hint.OrganizationID,
			"linked", link != nil)
	}

	credential, err := s.signer.Sign(created.User)
	if err != nil {
		s.metrics.Login(strategy.Name(), metrics.OutcomeFailed)
		return nil, errors.WrapInternal("failed to issue session", err)
	}

	logger.Info("New user provisioned", "organization_id", created.Organization.ID)
	s.metrics.Login(strategy.Name(), metrics.OutcomeNewUser)

	return &ProvisioningResult{Credential: credential, Organization: link}, nil
}

// DecodeOrgHint parses the org cookie. Empty or malformed input, a missing
// organization or invitation id, or a role other than USER or ADMIN yields
// (nil, false).
func (s *Service) DecodeOrgHint(raw string) (*OrgHint, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	// Browsers may hand the cookie back percent-encoded. Plain JSON is left as is.
	if !strings.HasPrefix(raw, "{") {
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = strings.TrimSpace(unescaped)
		}
	}

	var hint OrgHint
	if err := json.Unmarshal([]byte(raw), &hint); err != nil {
		s.logger.Debug("Ignoring malformed organization hint", "error", err)
		return nil, false
	}

	if hint.OrganizationID == "" || hint.InvitationID == "" {
		return nil, false
	}
	if hint.Role != organization.RoleUser && hint.Role != organization.RoleAdmin {
		return nil, false
	}

	return &hint, true
}
