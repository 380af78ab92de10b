package organization

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"sso-server/internal/shared/database"
	"sso-server/internal/user"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type Repository struct {
	db    *database.DB
	users *user.Repository
}

func NewRepository(db *database.DB, users *user.Repository) *Repository {
	logger := slog.With("component", "organization_repository", "operation", "init")
	logger.Debug("Initializing organization repository")
	return &Repository{db: db, users: users}
}

// CreateWithOwner inserts an organization, its first user and the SUPERADMIN
// membership in one transaction.
func (r *Repository) CreateWithOwner(ctx context.Context, name string, owner user.NewUser) (*Created, error) {
	logger := slog.With(
		"component", "organization_repository",
		"operation", "create_with_owner",
		"email", owner.Email,
	)
	logger.Info("Creating organization and owner")

	var created Created
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		org, err := r.insertOrganization(ctx, tx, name)
		if err != nil {
			return err
		}

		u, err := r.users.Create(ctx, tx, owner)
		if err != nil {
			return err
		}

		if err := r.insertMembership(ctx, tx, u.ID, org.ID, RoleSuperAdmin); err != nil {
			return err
		}

		created = Created{Organization: org, User: u}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create organization and owner", "error", err)
		return nil, err
	}

	logger.Info("Organization and owner created",
		"organization_id", created.Organization.ID,
		"user_id", created.User.ID)
	return &created, nil
}

// AddMemberByInvitation adds userID to orgID with role and marks
// invitationID as used by that user. It returns (nil, nil) when the
// invitation was already used or the organization does not exist.
func (r *Repository) AddMemberByInvitation(ctx context.Context, userID uuid.UUID, invitationID string, orgID uuid.UUID, role Role) (*Link, error) {
	logger := slog.With(
		"component", "organization_repository",
		"operation", "add_member_by_invitation",
		"user_id", userID,
		"organization_id", orgID,
		"role", role,
	)
	logger.Debug("Adding user to organization")

	var link *Link
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		used, err := r.users.InviteUsed(ctx, tx, invitationID)
		if err != nil {
			return err
		}
		if used {
			logger.Info("Invitation already used")
			return nil
		}

		if err := r.insertMembership(ctx, tx, userID, orgID, role); err != nil {
			return err
		}

		if err := r.users.SetInviteID(ctx, tx, userID, invitationID); err != nil {
			return err
		}

		link = &Link{OrganizationID: orgID.String()}
		return nil
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				// Another request consumed the invitation first.
				logger.Info("Invitation consumed concurrently", "constraint", pqErr.Constraint)
				return nil, nil
			case pqForeignKeyViolation:
				logger.Warn("Invitation references unknown organization")
				return nil, nil
			}
		}
		logger.Error("Failed to add user to organization", "error", err)
		return nil, err
	}

	if link != nil {
		logger.Info("User added to organization")
	}
	return link, nil
}

func (r *Repository) ListMemberships(ctx context.Context, userID uuid.UUID) ([]Membership, error) {
	query, args, err := psql.Select("user_id", "organization_id", "role").
		From("user_organizations").
		Where(sq.Eq{"user_id": userID.String()}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []Membership
	for rows.Next() {
		var m Membership
		var role string
		if err := rows.Scan(&m.UserID, &m.OrganizationID, &role); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		m.Role = Role(role)
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating memberships: %w", err)
	}

	return memberships, nil
}

func (r *Repository) insertOrganization(ctx context.Context, exec database.Executor, name string) (*Organization, error) {
	query, args, err := psql.Insert("organizations").
		Columns("id", "name", "api_key").
		Values(uuid.New(), name, newAPIKey()).
		Suffix("RETURNING id, name, api_key, allow_trial, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var org Organization
	err = exec.QueryRowContext(ctx, query, args...).
		Scan(&org.ID, &org.Name, &org.APIKey, &org.AllowTrial, &org.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return &org, nil
}

func (r *Repository) insertMembership(ctx context.Context, exec database.Executor, userID, orgID uuid.UUID, role Role) error {
	query, args, err := psql.Insert("user_organizations").
		Columns("user_id", "organization_id", "role").
		Values(userID, orgID, string(role)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

func newAPIKey() string {
	sum := sha256.Sum256([]byte(uuid.NewString()))
	return hex.EncodeToString(sum[:])
}
