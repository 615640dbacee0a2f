package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var migrationsFS embed.FS

// MigrationStatus describes where a database stands against the embedded migrations
type MigrationStatus struct {
	CurrentVersion uint
	LatestVersion  uint
	Dirty          bool
	Pending        bool
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// m.Close would close db as well, which the repository still owns.
	return nil
}

// Status reports the applied and latest available migration versions
func Status(db *sql.DB) (*MigrationStatus, error) {
	m, err := newMigrator(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, err
	}

	latest, err := latestVersion()
	if err != nil {
		return nil, err
	}

	return &MigrationStatus{
		CurrentVersion: version,
		LatestVersion:  latest,
		Dirty:          dirty,
		Pending:        version < latest,
	}, nil
}

func latestVersion() (uint, error) {
	source, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return 0, err
	}
	defer source.Close()

	latest, err := source.First()
	if err != nil {
		return 0, err
	}
	for {
		next, err := source.Next(latest)
		if err != nil {
			break
		}
		latest = next
	}
	return latest, nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", source, "sqlite", driver)
}
