package database

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/investguard/investguard/pkg/config"
)

// Migrate applies all pending migrations from the given source filesystem
func Migrate(cfg *config.DatabaseConfig, source fs.FS) error {
	driver, err := iofs.New(source, ".")
	if err != nil {
		return fmt.Errorf("unable to open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", driver, migrateURL(cfg))
	if err != nil {
		return fmt.Errorf("unable to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	return nil
}

func migrateURL(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password),
		cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)
}
