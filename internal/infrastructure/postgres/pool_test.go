package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig("postgres://app:secret@db:5432/events?sslmode=disable", PoolOptions{
		AppName:         "event-registration",
		MaxConns:        8,
		MinConns:        2,
		MaxConnLifetime: 30 * time.Minute,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 8, cfg.MaxConns)
	assert.EqualValues(t, 2, cfg.MinConns)
	assert.Equal(t, 30*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, "event-registration", cfg.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "db", cfg.ConnConfig.Host)
}

func TestPoolConfig_ZeroOptionsKeepDSNSettings(t *testing.T) {
	cfg, err := poolConfig("postgres://app@db/events?pool_max_conns=3&application_name=psql", PoolOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, cfg.MaxConns)
	assert.Equal(t, "psql", cfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_MinConnsCappedByMax(t *testing.T) {
	cfg, err := poolConfig("postgres://app@db/events", PoolOptions{MaxConns: 2, MinConns: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 2, cfg.MinConns)
}

func TestPoolConfig_BadDSN(t *testing.T) {
	_, err := poolConfig("postgres://app@db:notaport/events", PoolOptions{})
	assert.ErrorContains(t, err, "parse database url")
}
