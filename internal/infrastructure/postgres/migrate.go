package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/assets"
	"github.com/fastygo/taskmaster/internal/config"
)

// Direction selects which way RunMigrations moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrations applies the schema migrations. The embedded set is used unless
// cfg.Migrations.Path points at a directory on disk.
func RunMigrations(cfg *config.Config, direction Direction, logger *zap.Logger) error {
	if cfg == nil {
		return errors.New("migrations: nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sqlDB, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := newMigrator(cfg.Migrations.Path, cfg.Database.Name, driver)
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case Down:
		err = m.Down()
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, _ := m.Version()
	logger.Info("database migrations applied",
		zap.String("direction", string(direction)),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

func newMigrator(path, dbName string, driver database.Driver) (*migrate.Migrate, error) {
	if path != "" {
		sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(path))
		return migrate.NewWithDatabaseInstance(sourceURL, dbName, driver)
	}
	source, err := iofs.New(assets.Migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", source, dbName, driver)
}
