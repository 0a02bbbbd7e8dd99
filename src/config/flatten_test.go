package config

import (
	"testing"

	"github.com/arbstatistix/financial-engineering/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenOrderAndRendering(t *testing.T) {
	cfg := mustParse(t, `{
		"market_constants": {"expiry_cutoff_time": [15, 30], "numeric_month_map": {"2": "FEB", "1": "JAN"}},
		"export": {"codec": "zstd"},
		"data_scope": {"underlyings": ["NIFTY", "BANKNIFTY"], "expiry_limit": 2},
		"symbol_registry": {"NIFTY": {"spot": "NIFTY 50", "futures": "NIFTY"}}
	}`)

	want := FlatMap{
		{Key: "data_scope.underlyings", Value: "NIFTY,BANKNIFTY"},
		{Key: "data_scope.date_from", Value: ""},
		{Key: "data_scope.date_to", Value: ""},
		{Key: "data_scope.instrument_classes", Value: ""},
		{Key: "data_scope.expiry_limit", Value: "2"},
		{Key: "symbol_registry.mappings.NIFTY.futures", Value: "NIFTY"},
		{Key: "symbol_registry.mappings.NIFTY.spot", Value: "NIFTY 50"},
		{Key: "export.file_format", Value: "parquet"},
		{Key: "export.codec", Value: "zstd"},
		{Key: "market_constants.valid_underlyings", Value: ""},
		{Key: "market_constants.symbol_exceptions", Value: ""},
		{Key: "market_constants.expiry_cutoff_time", Value: "15,30"},
		{Key: "market_constants.calendar_month_map", Value: ""},
		{Key: "market_constants.numeric_month_map.1", Value: "JAN"},
		{Key: "market_constants.numeric_month_map.2", Value: "FEB"},
		{Key: "market_constants.alpha_month_map", Value: ""},
		{Key: "market_constants.trading_schedule.session_open", Value: ""},
		{Key: "market_constants.trading_schedule.session_close", Value: ""},
		{Key: "market_constants.trading_schedule.minutes_per_session", Value: "0"},
		{Key: "market_constants.trading_schedule.sessions_per_year", Value: "252"},
		{Key: "market_constants.exchange_holidays", Value: ""},
	}
	assert.Equal(t, want, cfg.Flatten())
}

func TestFlattenEmptyRegistryKeepsKey(t *testing.T) {
	flat := mustParse(t, `{"symbol_registry": "x"}`).Flatten()
	assert.Equal(t, FlatMap{{Key: "symbol_registry.mappings", Value: ""}}, flat)
}

func TestFlattenCoversEveryExecutionField(t *testing.T) {
	flat := mustParse(t, `{"execution": {}, "preprocessing": {"forward_fill": true}}`).Flatten()

	pre := flat.WithPrefix(models.KeyPreprocessing)
	assert.Equal(t, []string{
		"preprocessing.backward_fill",
		"preprocessing.forward_fill",
		"preprocessing.ignore_empty_files",
		"preprocessing.merge_daily_outputs",
	}, pre.Keys())

	v, ok := pre.Get("preprocessing.forward_fill")
	require.True(t, ok)
	assert.Equal(t, "true", v)

	ex := flat.WithPrefix(models.KeyExecution)
	assert.Len(t, ex, 41)
	assert.Equal(t, "execution.io_chunk_size", ex[0].Key)
	assert.Equal(t, "execution.batch_scaling_factor", ex[40].Key)

	v, _ = ex.Get("execution.greeks_block_size")
	assert.Equal(t, "100000", v)
	v, _ = ex.Get("execution.disable_memory_controller")
	assert.Equal(t, "true", v)
}

func TestFlattenSkipsAbsentDomains(t *testing.T) {
	flat := mustParse(t, `{"acceleration": {}}`).Flatten()
	assert.Equal(t, FlatMap{{Key: "acceleration.enable_gpu", Value: "false"}}, flat)

	_, ok := flat.Get("export.codec")
	assert.False(t, ok)
}

func TestFlatMapHelpers(t *testing.T) {
	flat := FlatMap{{Key: "a.x", Value: "1"}, {Key: "ab.y", Value: "2"}, {Key: "a.z", Value: "3"}}

	assert.Equal(t, []string{"a.x", "ab.y", "a.z"}, flat.Keys())
	assert.Equal(t, map[string]string{"a.x": "1", "ab.y": "2", "a.z": "3"}, flat.ToMap())
	assert.Equal(t, FlatMap{{Key: "a.x", Value: "1"}, {Key: "a.z", Value: "3"}}, flat.WithPrefix("a"))
}

func TestDiff(t *testing.T) {
	prev := mustParse(t, `{"export": {"codec": "none"}, "acceleration": {}}`).Flatten()
	next := mustParse(t, `{"export": {"codec": "zstd"}, "post_compute": {}}`).Flatten()

	assert.Equal(t, []FlatChange{
		{Key: "export.codec", Kind: ChangeUpdated, Old: "none", New: "zstd"},
		{Key: "post_compute.compute_synthetic_futures", Kind: ChangeAdded, New: "false"},
		{Key: "post_compute.recompute_theoretical_greeks", Kind: ChangeAdded, New: "false"},
		{Key: "acceleration.enable_gpu", Kind: ChangeRemoved, Old: "false"},
	}, Diff(prev, next))

	assert.Empty(t, Diff(next, next))
}
