package postgres_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentopia/config"
	"rentopia/infras/postgres"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"

	target := config.PostgresTarget{
		Host:     "db.internal",
		Port:     "5432",
		Username: "rentopia",
		Password: "p@ss/word",
		Name:     "rentopia",
		Timezone: "UTC",
		SSLMode:  "disable",
	}

	dsn := postgres.DSN(cfg, target, url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/test_rentopia", parsed.Path)
	assert.Equal(t, "rentopia", parsed.User.Username())

	password, ok := parsed.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss/word", password)

	query := parsed.Query()
	assert.Equal(t, "disable", query.Get("sslmode"))
	assert.Equal(t, "UTC", query.Get("timezone"))
	assert.Equal(t, "schema_migrations", query.Get("x-migrations-table"))
}

func TestDSN_NoTimezone(t *testing.T) {
	dsn := postgres.DSN(&config.Config{}, config.PostgresTarget{Host: "localhost", Port: "5432", Name: "rentopia", SSLMode: "require"}, nil)

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	assert.False(t, parsed.Query().Has("timezone"))
	assert.Equal(t, "/rentopia", parsed.Path)
}
