package settings

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "config.json", s.Config)
	assert.Equal(t, ":8090", s.HTTPAddr)
	assert.Equal(t, ":50051", s.GRPCAddr)
	assert.Equal(t, "", s.StoreDriver)
	assert.Equal(t, 20, s.KeepSnapshots)
	assert.Equal(t, "xnse", s.Exchange)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("FECFG_HTTP_ADDR", "127.0.0.1:9999")
	t.Setenv("FECFG_STORE_DRIVER", "SQLite")
	t.Setenv("FECFG_STORE_DSN", "/tmp/snapshots.db")

	s, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", s.HTTPAddr)
	assert.Equal(t, "sqlite", s.StoreDriver)
	assert.Equal(t, "/tmp/snapshots.db", s.StoreDSN)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("FECFG_EXCHANGE", "xlon")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("exchange", "xnse", "")
	flags.String("grpc-addr", ":50051", "")
	flags.Bool("flat", false, "")
	require.NoError(t, flags.Parse([]string{"--exchange=xnys", "--grpc-addr=:6000"}))

	v := New()
	require.NoError(t, BindFlags(v, flags))

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "xnys", s.Exchange)
	assert.Equal(t, ":6000", s.GRPCAddr)
}

func TestUnchangedFlagKeepsEnvironment(t *testing.T) {
	t.Setenv("FECFG_EXCHANGE", "xlon")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("exchange", "xnse", "")
	require.NoError(t, flags.Parse(nil))

	v := New()
	require.NoError(t, BindFlags(v, flags))

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "xlon", s.Exchange)
}

func TestStoreDriverNeedsDSN(t *testing.T) {
	t.Setenv("FECFG_STORE_DRIVER", "postgres")

	_, err := Load(New())
	assert.Error(t, err)
}
