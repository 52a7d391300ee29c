package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations applies all pending migrations for driver.
func RunMigrations(sqlDB *sql.DB, driver string) error {
	m, err := newMigrate(sqlDB, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// RollbackMigration reverts the most recent migration.
func RollbackMigration(sqlDB *sql.DB, driver string) error {
	m, err := newMigrate(sqlDB, driver)
	if err != nil {
		return err
	}

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}

// MigrationVersion returns the current schema version and whether the last
// migration left the schema dirty.
func MigrationVersion(sqlDB *sql.DB, driver string) (uint, bool, error) {
	m, err := newMigrate(sqlDB, driver)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// newMigrate builds a migrator over the embedded migrations. It is never
// closed because closing it would close sqlDB too.
func newMigrate(sqlDB *sql.DB, driver string) (*migrate.Migrate, error) {
	name := driverName(driver)

	src, err := iofs.New(migrationsFS, "migrations/"+name)
	if err != nil {
		return nil, fmt.Errorf("no migrations for driver %s: %w", name, err)
	}

	var target migratedb.Driver
	switch name {
	case DriverSQLite:
		target, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	case DriverMySQL:
		target, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, name, target)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}
