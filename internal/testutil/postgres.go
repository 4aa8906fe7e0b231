//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mechanic_shop/internal/config"
)

// NewPostgresDB starts a throwaway Postgres container and returns a migrated
// connection to it. Setting TEST_DB_HOST points the test at an existing
// server instead.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.Config{
		DBDriver:   "postgres",
		DBHost:     os.Getenv("TEST_DB_HOST"),
		DBPort:     "5432",
		DBUser:     "test",
		DBPassword: "test",
		DBName:     "mechanic_shop",
		DBSSLMode:  "disable",
		DBTimezone: "UTC",
	}

	if cfg.DBHost == "" {
		ctx := context.Background()
		pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image: "postgres:15",
				Env: map[string]string{
					"POSTGRES_PASSWORD": cfg.DBPassword,
					"POSTGRES_USER":     cfg.DBUser,
					"POSTGRES_DB":       cfg.DBName,
				},
				ExposedPorts: []string{"5432/tcp"},
				WaitingFor: wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60 * time.Second),
			},
			Started: true,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

		host, err := pg.Host(ctx)
		require.NoError(t, err)
		port, err := pg.MappedPort(ctx, "5432")
		require.NoError(t, err)
		cfg.DBHost, cfg.DBPort = host, port.Port()
	}

	db, err := config.OpenDB(cfg, gormlogger.Discard)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}
