package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSuggestedConstants(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1234, cfg.Port)
	assert.Equal(t, 10_000_000, cfg.MaxGlobalOrders)
	assert.Equal(t, 20_000, cfg.MaxPriceLevels)
	assert.Equal(t, 1e-9, cfg.Epsilon)
	assert.False(t, cfg.EnforceWhitelist)
	assert.Equal(t, DuplicateReject, cfg.DuplicateOrderPolicy)
}

func TestLoadWithoutConfigFileFallsBackToDefaults(t *testing.T) {
	_, cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1234, cfg.Port)
}
