package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sso-server/internal/shared/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"id", "email", "provider_name", "provider_id", "activated",
	"ip", "agent", "invite_id", "created_at", "updated_at",
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	logger := slog.With("component", "user_repository", "operation", "init")
	logger.Debug("Initializing user repository")
	return &Repository{db: db}
}

// FindByProviderIdentity returns (nil, nil) when no user is linked to the
// given provider identity.
func (r *Repository) FindByProviderIdentity(ctx context.Context, provider Provider, providerID string) (*User, error) {
	logger := slog.With(
		"component", "user_repository",
		"operation", "find_by_provider_identity",
		"provider", provider,
	)
	logger.Debug("Finding user by provider identity")

	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"provider_name": string(provider), "provider_id": providerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("No user linked to provider identity")
			return nil, nil
		}
		logger.Error("Database error finding user by provider identity", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	logger.Debug("Found user by provider identity", "user_id", user.ID)
	return user, nil
}

// FindByEmail returns (nil, nil) when no user with that email is registered
// under provider.
func (r *Repository) FindByEmail(ctx context.Context, email string, provider Provider) (*User, error) {
	logger := slog.With(
		"component", "user_repository",
		"operation", "find_by_email",
		"provider", provider,
	)

	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email, "provider_name": string(provider)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("Database error finding user by email", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return user, nil
}

// GetByID returns (nil, nil) when the user does not exist.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	logger := slog.With("component", "user_repository", "operation", "get_by_id", "user_id", id)
	logger.Debug("Getting user by ID")

	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("No user found with ID")
			return nil, nil
		}
		logger.Error("Database error getting user by ID", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return user, nil
}

// Create inserts a user through exec so it can share a transaction with
// the organization rows created alongside it.
func (r *Repository) Create(ctx context.Context, exec database.Executor, params NewUser) (*User, error) {
	logger := slog.With(
		"component", "user_repository",
		"operation", "create",
		"email", params.Email,
		"provider", params.ProviderName,
	)
	logger.Info("Creating new user")

	query, args, err := psql.Insert("users").
		Columns("id", "email", "password", "provider_name", "provider_id", "activated", "ip", "agent").
		Values(uuid.New(), params.Email, params.PasswordHash, string(params.ProviderName),
			params.ProviderID, params.Activated, params.IP, params.Agent).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	user, err := scanUser(exec.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.Error("Failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created successfully", "user_id", user.ID)
	return user, nil
}

// InviteUsed reports whether any user has already consumed invitationID.
func (r *Repository) InviteUsed(ctx context.Context, exec database.Executor, invitationID string) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("users").
		Where(sq.Eq{"invite_id": invitationID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var used bool
	if err := exec.QueryRowContext(ctx, query, args...).Scan(&used); err != nil {
		return false, fmt.Errorf("failed to check invitation: %w", err)
	}
	return used, nil
}

func (r *Repository) SetInviteID(ctx context.Context, exec database.Executor, userID uuid.UUID, invitationID string) error {
	query, args, err := psql.Update("users").
		Set("invite_id", invitationID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to record invitation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record invitation: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("failed to record invitation: user %s not found", userID)
	}
	return nil
}

func scanUser(row *sql.Row) (*User, error) {
	var user User
	var providerName string
	var inviteID sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&providerName,
		&user.ProviderID,
		&user.Activated,
		&user.IP,
		&user.Agent,
		&inviteID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.ProviderName = Provider(providerName)
	if inviteID.Valid {
		user.InviteID = &inviteID.String
	}
	return &user, nil
}
