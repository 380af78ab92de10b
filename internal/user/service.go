package user

import (
	"context"
	"log/slog"

	"sso-server/internal/shared/errors"

	"github.com/google/uuid"
)

type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing user service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) FindByProviderIdentity(ctx context.Context, provider Provider, providerID string) (*User, error) {
	user, err := s.repo.FindByProviderIdentity(ctx, provider, providerID)
	if err != nil {
		return nil, errors.WrapInternal("failed to look up user", err)
	}
	return user, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string, provider Provider) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email, provider)
	if err != nil {
		return nil, errors.WrapInternal("failed to look up user", err)
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapInternal("failed to get user", err)
	}
	if user == nil {
		return nil, errors.NotFoundf("user %s not found", id)
	}
	return user, nil
}
