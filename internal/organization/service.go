package organization

import (
	"context"
	"log/slog"

	"sso-server/internal/shared/errors"
	"sso-server/internal/user"

	"github.com/google/uuid"
)

type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing organization service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateOrgAndUser registers a new user as the SUPERADMIN of a fresh
// organization named after account.Company.
func (s *Service) CreateOrgAndUser(ctx context.Context, account NewAccount, ip, userAgent string) (*Created, error) {
	if account.Email == "" {
		return nil, errors.Validation("email is required")
	}
	if !account.Provider.IsValid() {
		return nil, errors.Validation("unknown provider " + account.Provider.String())
	}

	owner := user.NewUser{
		Email:        account.Email,
		ProviderName: account.Provider,
		ProviderID:   account.ProviderID,
		Activated:    account.Activated || account.Provider != user.ProviderLocal,
		IP:           ip,
		Agent:        userAgent,
	}
	if account.PasswordHash != "" {
		owner.PasswordHash = &account.PasswordHash
	}

	created, err := s.repo.CreateWithOwner(ctx, account.Company, owner)
	if err != nil {
		return nil, errors.WrapInternal("failed to create organization and user", err)
	}
	return created, nil
}

// AddUserToOrg links userID to an existing organization through an
// invitation. Each invitation can be used once; later uses, and invitations
// naming an organization that does not exist, return (nil, nil).
func (s *Service) AddUserToOrg(ctx context.Context, userID uuid.UUID, invitationID, organizationID string, role Role) (*Link, error) {
	logger := s.logger.With(
		"component", "organization_service",
		"operation", "add_user_to_org",
		"user_id", userID,
	)

	if role != RoleUser && role != RoleAdmin {
		return nil, errors.Validation("invitation role must be USER or ADMIN")
	}

	orgID, err := uuid.Parse(organizationID)
	if err != nil {
		logger.Warn("Invitation has malformed organization id", "organization_id", organizationID)
		return nil, nil
	}

	link, err := s.repo.AddMemberByInvitation(ctx, userID, invitationID, orgID, role)
	if err != nil {
		return nil, errors.WrapInternal("failed to add user to organization", err)
	}
	return link, nil
}

func (s *Service) ListMemberships(ctx context.Context, userID uuid.UUID) ([]Membership, error) {
	memberships, err := s.repo.ListMemberships(ctx, userID)
	if err != nil {
		return nil, errors.WrapInternal("failed to list memberships", err)
	}
	return memberships, nil
}
