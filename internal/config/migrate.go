package config

import (
	"errors"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// RunMigration applies every pending migration from MIGRATIONS_PATH to POSTGRES_URL.
func RunMigration(config *koanf.Koanf, log *zap.Logger) error {
	absPath, err := filepath.Abs(config.String("MIGRATIONS_PATH"))
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absPath), config.String("POSTGRES_URL"))
	if err != nil {
		return err
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil || dbErr != nil {
			log.Warn("failed to close migrate instance", zap.NamedError("source", sourceErr), zap.NamedError("database", dbErr))
		}
	}()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	log.Info("database migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))

	return nil
}
