package setup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationsDir locates db/migrations relative to this file, so it works
// from any package that runs the tests.
func MigrationsDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		wd, _ := os.Getwd()
		return filepath.Join(wd, "..", "..", "db", "migrations")
	}

	return filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "migrations")
}

func RunMigration(pgURL string, t *testing.T) error {
	t.Log("Running database migrations...")

	absPath, err := filepath.Abs(MigrationsDir())
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absPath), pgURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
