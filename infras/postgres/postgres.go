// Package postgres opens the read and write connection pools. Reads go to a
// replica when one is configured; booking creation and payment settlement
// always run on Write.
package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"rentopia/config"
	"rentopia/shared/constant"
)

const driverName = "postgres"

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// DSN builds a postgres URL for target. Extra query parameters, such as the
// migration table, are appended as given.
func DSN(cfg *config.Config, target config.PostgresTarget, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", target.SSLMode)

	if target.Timezone != constant.Empty {
		query.Set("timezone", target.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(target.Username, target.Password),
		Host:     net.JoinHostPort(target.Host, target.Port),
		Path:     cfg.DB.Postgres.Prefix + target.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(cfg *config.Config, name string, target config.PostgresTarget) *sqlx.DB {
	pg := cfg.DB.Postgres
	dbName := pg.Prefix + target.Name
	logger := log.With().Str("name", name).Str("host", target.Host).Str("port", target.Port).Str("dbName", dbName).Logger()

	attempts := max(pg.MaxRetry, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, DSN(cfg, target, nil))
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifeMin) * time.Minute)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Msgf("Could not connect to database after %d attempts", attempts)

	return nil
}
