package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsEmpty(t *testing.T) {
	t.Setenv("LIFEPRG_DB", "")
	t.Setenv("LIFEPRG_CATALOG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.CatalogPath)
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("LIFEPRG_DB", "/tmp/lifeprg-test.db")
	t.Setenv("LIFEPRG_CATALOG", "/tmp/catalog.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lifeprg-test.db", cfg.DBPath)
	assert.Equal(t, "/tmp/catalog.yaml", cfg.CatalogPath)
}
