package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "loyalty", cfg.MongoDB.Database)
	assert.Equal(t, 24*60*60, cfg.JWT.ExpiresIn)
	assert.Equal(t, "info", cfg.LogLevel)
}
