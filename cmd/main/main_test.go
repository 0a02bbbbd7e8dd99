package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = "../../src/config/testdata/config.json"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// -----------------------------------------------------------------------------

func TestRootPrintsSummary(t *testing.T) {
	out, _, err := run(t, sampleConfig)
	require.NoError(t, err)

	assert.Contains(t, out, "Configuration loaded from: "+sampleConfig)
	assert.Contains(t, out, " - log_root: /data/processed")
	assert.Contains(t, out, " - underlyings count: 3")
	assert.Contains(t, out, "Symbol registry groups: 2")
	assert.Contains(t, out, "Done.")
}

func TestRootReportsLoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	out, errOut, err := run(t, missing)
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Failed to load configuration from "+missing)
}

func TestRootConfigFlag(t *testing.T) {
	out, _, err := run(t, "--config", sampleConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "Done.")
}

func TestRootFlatJSON(t *testing.T) {
	out, _, err := run(t, sampleConfig, "--flat", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"export.codec": "zstd"`)
}

func TestRootExport(t *testing.T) {
	target := filepath.Join(t.TempDir(), "flat.env")

	_, _, err := run(t, sampleConfig, "--export", target)
	require.NoError(t, err)

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "market_constants.trading_schedule.sessions_per_year=248\n")
}

func TestRecordPrintsDiff(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	db := filepath.Join(dir, "snapshots.db")

	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"export": {"codec": "zstd"}}`), 0o644))
	out, _, err := run(t, cfgPath, "--record", "--store-driver", "sqlite", "--store-dsn", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No previous snapshot.")

	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"export": {"codec": "lz4"}}`), 0o644))
	out, _, err = run(t, cfgPath, "--record", "--store-driver", "sqlite", "--store-dsn", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Changes since")
	assert.Contains(t, out, " ~ export.codec: zstd -> lz4")
}

func TestRecordNeedsStore(t *testing.T) {
	_, _, err := run(t, sampleConfig, "--record")
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	out, _, err := run(t, "query", "$.ui.theme", sampleConfig)
	require.NoError(t, err)
	assert.Equal(t, "\"dark\"\n", out)
}

func TestCalendarHonorsConfiguredHolidays(t *testing.T) {
	out, _, err := run(t, "calendar", sampleConfig, "--date", "2024-03-08")
	require.NoError(t, err)
	assert.Contains(t, out, " - trading day: false")
	assert.Contains(t, out, " - configured holiday: true")
	assert.Contains(t, out, " - session minutes: 375")
	assert.Contains(t, out, " - sessions per year: 248")

	out, _, err = run(t, "calendar", sampleConfig, "--date", "2024-03-16")
	require.NoError(t, err)
	assert.Contains(t, out, " - trading day: false")
	assert.Contains(t, out, " - configured holiday: false")
}

func TestCalendarOpenAtTime(t *testing.T) {
	out, _, err := run(t, "calendar", sampleConfig, "--date", "2024-03-15", "--at", "10:00")
	require.NoError(t, err)
	assert.Contains(t, out, " - trading day: true")
	assert.Contains(t, out, " - open at 10:00: true")

	out, _, err = run(t, "calendar", sampleConfig, "--date", "2024-03-15", "--at", "16:00")
	require.NoError(t, err)
	assert.Contains(t, out, " - open at 16:00: false")

	out, _, err = run(t, "calendar", sampleConfig, "--date", "2024-03-08", "--at", "10:00")
	require.NoError(t, err)
	assert.Contains(t, out, " - open at 10:00: false")

	_, _, err = run(t, "calendar", sampleConfig, "--date", "2024-03-15", "--at", "25:99")
	assert.Error(t, err)
}

func TestServeReportsLoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	_, errOut, err := run(t, "serve", missing)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "Failed to load configuration from "+missing)
}
