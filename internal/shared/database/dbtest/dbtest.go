// Package dbtest starts a throwaway PostgreSQL container for repository tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"sso-server/internal/shared/database"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// Setup starts one PostgreSQL container per test binary, applies the
// embedded migrations and returns a connection to it. Tests are skipped in
// -short mode.
func Setup(t *testing.T) *database.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("dbtest: failed to setup test DB: %v", initErr)
	}

	sqlDB, err := sql.Open("postgres", sharedDSN)
	if err != nil {
		t.Fatalf("dbtest: failed to open database: %v", err)
	}

	db := &database.DB{DB: sqlDB}
	t.Cleanup(func() {
		truncate(t, db)
		_ = db.Close()
	})

	return db
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return "", fmt.Errorf("sql.Open: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return "", fmt.Errorf("db ping: %w", err)
	}

	db := &database.DB{DB: sqlDB}
	if err := db.RunMigrations(ctx); err != nil {
		return "", err
	}

	return dsn, nil
}

func truncate(t *testing.T, db *database.DB) {
	t.Helper()

	_, err := db.ExecContext(context.Background(),
		`TRUNCATE user_organizations, users, organizations CASCADE`)
	if err != nil {
		t.Logf("dbtest: failed to truncate tables: %v", err)
	}
}
