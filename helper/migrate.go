// Package helper drives golang-migrate against the write database, both from
// cmd/migrate and from the API when auto migration is enabled.
package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"rentopia/config"
	"rentopia/infras/postgres"
)

const migrationSource = "file://migrations/postgres"

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

func open(cfg *config.Config) (*migrate.Migrate, error) {
	dsn := postgres.DSN(cfg, cfg.DB.Postgres.Write, url.Values{
		"x-migrations-table": {cfg.DB.Postgres.MigrationTable},
	})

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func closeMigrate(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		log.Warn().Err(err).Msg("Failed to close migrate instance")
	}
}

// Runner applies action. ErrNoChange is not treated as a failure.
func Runner(cfg *config.Config, action string) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer closeMigrate(mig)

	var step func() error

	switch action {
	case ActionUp:
		step = mig.Up
	case ActionDown:
		step = func() error { return mig.Steps(-1) }
	case ActionStepUp:
		step = func() error { return mig.Steps(1) }
	case ActionDrop:
		step = mig.Down
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if err = step(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	logVersion(mig, action)

	return nil
}

func logVersion(mig *migrate.Migrate, action string) {
	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Warn().Err(err).Msg("Could not read migration version")

		return
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}

// Force sets the recorded version without running any migration, clearing a
// dirty flag left by a failed run.
func Force(cfg *config.Config, version int) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer closeMigrate(mig)

	if err = mig.Force(version); err != nil {
		return fmt.Errorf("error forcing migration version %d: %w", version, err)
	}

	logVersion(mig, "force")

	return nil
}
