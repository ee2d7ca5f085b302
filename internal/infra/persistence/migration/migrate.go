// Package migration applies the embedded schema migrations with golang-migrate.
package migration

import (
	"io/fs"
	"log/slog"

	"storefront/internal/errors"
	"storefront/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

const sourceName = "iofs"

// Migrator runs schema migrations against the storefront database.
type Migrator struct {
	migrate *migrate.Migrate
	logger  *slog.Logger
}

// New builds a Migrator on the connection pool behind db.
func New(db *gorm.DB, logger *slog.Logger) (*Migrator, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	driver, err := pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration driver")
	}

	return newMigrator(migrations.FS, "pgx5", driver, logger)
}

func newMigrator(files fs.FS, driverName string, driver database.Driver, logger *slog.Logger) (*Migrator, error) {
	source, err := iofs.New(files, ".")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open migration files")
	}

	m, err := migrate.NewWithInstance(sourceName, source, driverName, driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrate instance")
	}

	return &Migrator{
		migrate: m,
		logger:  logger.With(slog.String("component", "migration")),
	}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up() error {
	m.logger.Info("Running migrations up")

	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migrations to apply")

			return nil
		}

		return errors.Wrap(err, "migration up failed")
	}

	return m.logVersion("Migrations completed")
}

// Down rolls back every applied migration.
func (m *Migrator) Down() error {
	m.logger.Info("Running migrations down")

	if err := m.migrate.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migrations to roll back")

			return nil
		}

		return errors.Wrap(err, "migration down failed")
	}

	m.logger.Info("All migrations rolled back")

	return nil
}

// Steps applies n migrations, rolling back when n is negative.
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Running migration steps", slog.Int("steps", n))

	if err := m.migrate.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("No migrations to apply")

			return nil
		}

		return errors.Wrapf(err, "migration steps %d failed", n)
	}

	return m.logVersion("Migration steps completed")
}

// Force marks version as applied without running it, clearing a dirty state.
func (m *Migrator) Force(version int) error {
	if err := m.migrate.Force(version); err != nil {
		return errors.Wrapf(err, "force version %d failed", version)
	}
	m.logger.Warn("Migration version forced", slog.Int("version", version))

	return nil
}

// Version returns the applied version. A database without migrations reports version 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}

		return 0, false, errors.Wrap(err, "failed to read migration version")
	}

	return version, dirty, nil
}

// Close releases the migration source and driver connection.
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return errors.Wrap(sourceErr, "failed to close migration source")
	}
	if dbErr != nil {
		return errors.Wrap(dbErr, "failed to close migration driver")
	}

	return nil
}

func (m *Migrator) logVersion(msg string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info(msg, slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

	return nil
}
