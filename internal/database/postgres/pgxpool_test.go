package postgres

import (
	"context"
	"net/url"
	"testing"
	"time"

	"jobboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN_EscapesCredentials(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:          " db ",
		DBPort:          "5432",
		DBUser:          "board",
		DBPassword:      "p@ss word/1",
		DBName:          "jobboard",
		DBSSLMode:       "require",
		ApplicationName: "jobboard-api",
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db:5432", u.Host)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss word/1", pw)
	assert.Equal(t, "/jobboard", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
	assert.Equal(t, "jobboard-api", u.Query().Get("application_name"))
}

func TestPoolConfig_AppliesPoolSettings(t *testing.T) {
	pcfg, err := poolConfig(config.DatabaseConfig{
		DBHost:              "localhost",
		DBPort:              "5432",
		DBUser:              "u",
		DBName:              "d",
		DBSSLMode:           "disable",
		ApplicationName:     "api",
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        12,
		PoolMinConns:        2,
		PoolMaxConnLifetime: time.Hour,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(12), pcfg.MaxConns)
	assert.Equal(t, int32(2), pcfg.MinConns)
	assert.Equal(t, time.Hour, pcfg.MaxConnLifetime)
	assert.Equal(t, 3*time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, "api", pcfg.ConnConfig.RuntimeParams["application_name"])
}

func TestNilPool_ReturnsErrNilDB(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	assert.ErrorIs(t, p.Ping(ctx), ErrNilDB)
	_, err := p.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrNilDB)
	assert.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(), ErrNilDB)
	assert.NoError(t, p.Close())
}
