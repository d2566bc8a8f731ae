//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/marcelsud/approval-relay/webhooklog/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	testcontainerspostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultDatabase = "testdb"
	defaultUser     = "testuser"
	defaultPassword = "testpass"
)

// PostgresContainer holds the Postgres testcontainer and connection details
type PostgresContainer struct {
	Container testcontainers.Container
	ConnStr   string
}

// SetupPostgresContainer creates and starts a PostgreSQL testcontainer
func SetupPostgresContainer(t *testing.T, ctx context.Context) (*PostgresContainer, func()) {
	t.Helper()

	pgContainer, err := testcontainerspostgres.Run(ctx,
		"postgres:16-alpine",
		testcontainerspostgres.WithDatabase(defaultDatabase),
		testcontainerspostgres.WithUsername(defaultUser),
		testcontainerspostgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start Postgres container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get Postgres connection string")

	pc := &PostgresContainer{
		Container: pgContainer,
		ConnStr:   connStr,
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Postgres container: %v", err)
		}
	}

	return pc, cleanup
}

// CreateTestRepository creates an audit log repository connected to the test
// container with the schema in place
func CreateTestRepository(t *testing.T, ctx context.Context, connStr string) *postgres.Repository {
	t.Helper()

	repo, err := postgres.NewRepository(connStr)
	require.NoError(t, err, "failed to create Postgres repository")
	require.NoError(t, repo.EnsureSchema(ctx), "failed to create schema")

	return repo
}
