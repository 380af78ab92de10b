// Command seed-demo creates a LOCAL demo user, stored with a bcrypt password
// hash, together with the organization it owns. Running it again leaves an
// existing demo user untouched.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"sso-server/internal/organization"
	"sso-server/internal/shared/config"
	"sso-server/internal/shared/database"
	"sso-server/internal/shared/logger"
	"sso-server/internal/user"

	"golang.org/x/crypto/bcrypt"
)

type demoAccount struct {
	Email    string
	Password string
	Company  string
}

func main() {
	var account demoAccount
	flag.StringVar(&account.Email, "email", "demo@example.com", "demo user email")
	flag.StringVar(&account.Password, "password", "demo1234", "demo user password")
	flag.StringVar(&account.Company, "company", "Demo Organization", "demo organization name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	appLogger := logger.Init(cfg)

	if err := run(context.Background(), cfg, appLogger, account); err != nil {
		appLogger.Error("Failed to seed demo user", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger *slog.Logger, account demoAccount) error {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		return err
	}

	_, err = seed(ctx, db, appLogger, account)
	return err
}

// seed reports whether a new demo user was created.
func seed(ctx context.Context, db *database.DB, appLogger *slog.Logger, account demoAccount) (bool, error) {
	logger := appLogger.With("component", "seed_demo", "operation", "seed", "email", account.Email)

	userRepo := user.NewRepository(db)
	users := user.NewService(userRepo, appLogger)

	existing, err := users.FindByEmail(ctx, account.Email, user.ProviderLocal)
	if err != nil {
		return false, err
	}
	if existing != nil {
		logger.Info("Demo user already exists", "user_id", existing.ID)
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	organizations := organization.NewService(organization.NewRepository(db, userRepo), appLogger)
	created, err := organizations.CreateOrgAndUser(ctx, organization.NewAccount{
		Company:      account.Company,
		Email:        account.Email,
		PasswordHash: string(hash),
		Provider:     user.ProviderLocal,
		Activated:    true,
	}, "127.0.0.1", "seed-demo")
	if err != nil {
		return false, err
	}

	logger.Info("Demo user created",
		"user_id", created.User.ID,
		"organization_id", created.Organization.ID,
		"role", organization.RoleSuperAdmin)
	return true, nil
}
