package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRawDocument(t *testing.T) {
	cfg, err := NewConfig(filepath.Join("testdata", "config.json"))
	require.NoError(t, err)

	v, err := cfg.Query("$.execution.global_worker_cap")
	require.NoError(t, err)
	assert.Equal(t, float64(16), v)

	// keys the mapper ignores are still reachable
	v, err = cfg.Query("$.ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	v, err = cfg.Query("$.data_scope.underlyings[0]")
	require.NoError(t, err)
	assert.Equal(t, "NIFTY", v)
}

func TestQueryUnknownKey(t *testing.T) {
	cfg := mustParse(t, `{"export": {}}`)
	_, err := cfg.Query("$.nope.missing")
	assert.Error(t, err)
}
