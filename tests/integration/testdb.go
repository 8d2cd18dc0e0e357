//go:build integration

// Package integration runs the storefront repositories against a real PostgreSQL
// started with testcontainers, with the schema applied by the embedded migrations.
package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fliamecomm/storefront/internal/infrastructure/migration"
	"github.com/fliamecomm/storefront/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated database inside its own container
type TestDB struct {
	DB        *gorm.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB starts a fresh PostgreSQL container and applies every migration.
// The container is terminated when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	gormLog := logger.Default.LogMode(logger.Silent)
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormLog = logger.Default.LogMode(logger.Info)
	}
	db, err := persistence.OpenDatabase(gormpostgres.Open(dsn), nil, gormLog)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	migrator, err := migration.New(sqlDB, "", zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, migrator.Up(), "Failed to run migrations")

	tdb := &TestDB{DB: db.DB, Container: container, DSN: dsn, t: t}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close closes the pool and terminates the container
func (tdb *TestDB) Close() {
	if sqlDB, err := tdb.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err := tdb.Container.Terminate(context.Background()); err != nil {
		tdb.t.Logf("Warning: Failed to terminate container: %v", err)
	}
}

// CleanTables truncates every storefront table
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			tdb.t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}
}
