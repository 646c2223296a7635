package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDSN(t *testing.T) {
	cfg := DefaultConfig()
	dsn := cfg.GetDSN()
	assert.Contains(t, dsn, "tcp(localhost:3306)")
	assert.Contains(t, dsn, "/storefront")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestGetDSNOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DSN = "raw-dsn"
	assert.Equal(t, "raw-dsn", cfg.GetDSN())
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Host = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxIdleConns = cfg.MaxOpenConns + 1
	assert.Error(t, cfg.Validate())

	// A raw DSN skips field validation entirely.
	cfg = &Config{DSN: "raw-dsn"}
	require.NoError(t, cfg.Validate())
}
