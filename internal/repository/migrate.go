package repository

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending schema migrations to the database behind
// connStr. Already-applied migrations are a no-op.
func Migrate(connStr string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, toPgxURL(connStr))
	if err != nil {
		return fmt.Errorf("migrate.NewWithSourceInstance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		return errors.Join(srcErr, dbErr)
	}

	return nil
}

// SchemaDDL returns the raw DDL of the up migrations in order, for
// binding the entity schemas to an ephemeral test store.
func SchemaDDL() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("ReadDir: %w", err)
	}

	var ddl []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("ReadFile[%s]: %w", entry.Name(), err)
		}
		ddl = append(ddl, string(content))
	}

	return ddl, nil
}

// toPgxURL rewrites a postgres:// URL to the scheme registered by the
// migrate pgx/v5 driver.
func toPgxURL(connStr string) string {
	if rest, ok := strings.CutPrefix(connStr, "postgres://"); ok {
		return "pgx5://" + rest
	}
	if rest, ok := strings.CutPrefix(connStr, "postgresql://"); ok {
		return "pgx5://" + rest
	}
	return connStr
}
