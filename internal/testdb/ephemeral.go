// Package testdb builds throwaway backing stores for tests. Each
// WithEphemeralStore invocation gets its own schema, so concurrent test
// runs never share mutable storage.
package testdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// StartPostgres launches a postgres container, optionally seeded with
// init scripts, and returns it together with its connection string.
func StartPostgres(ctx context.Context, initScripts ...string) (*postgres.PostgresContainer, string, error) {
	opts := []testcontainers.ContainerCustomizer{
		postgres.BasicWaitStrategies(),
	}
	if len(initScripts) > 0 {
		opts = append(opts, postgres.WithInitScripts(initScripts...))
	}

	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22", opts...)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// WithEphemeralStore creates a throwaway schema on the database behind
// connStr, binds the given DDL to it, and runs fn with a pool pinned to
// that schema. The schema is dropped and the pool closed on every exit
// path, including a panicking fn or a test aborted mid-body.
func WithEphemeralStore(ctx context.Context, connStr string, ddl []string, fn func(pool *pgxpool.Pool) error) (err error) {
	schema := "ephemeral_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer admin.Close()

	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		return fmt.Errorf("create schema[%s]: %w", schema, err)
	}

	defer func() {
		_, dropErr := admin.Exec(ctx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE")
		if dropErr != nil {
			err = errors.Join(err, fmt.Errorf("drop schema[%s]: %w", schema, dropErr))
		}
	}()

	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}
	defer pool.Close()

	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply ddl: %w", err)
		}
	}

	return fn(pool)
}
