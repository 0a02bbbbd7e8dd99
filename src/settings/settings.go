package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "FECFG"

// Settings configures the tool itself, not the pipeline it loads.
type Settings struct {
	Config        string `mapstructure:"config"`
	HTTPAddr      string `mapstructure:"http_addr"`
	GRPCAddr      string `mapstructure:"grpc_addr"`
	StoreDriver   string `mapstructure:"store_driver"`
	StoreDSN      string `mapstructure:"store_dsn"`
	KeepSnapshots int    `mapstructure:"keep_snapshots"`
	Exchange      string `mapstructure:"exchange"`
}

// -----------------------------------------------------------------------------

// SetDefaults registers the baseline value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("config", "config.json")
	v.SetDefault("http_addr", ":8090")
	v.SetDefault("grpc_addr", ":50051")
	v.SetDefault("store_driver", "")
	v.SetDefault("store_dsn", "")
	v.SetDefault("keep_snapshots", 20)
	v.SetDefault("exchange", "xnse")
}

// -----------------------------------------------------------------------------

// New returns a viper instance with defaults and FECFG_* environment lookup.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// -----------------------------------------------------------------------------

// BindFlags binds every flag in flags whose name matches a setting, with
// dashes read as underscores ("http-addr" binds "http_addr").
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isSetting(key) || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

func isSetting(key string) bool {
	switch key {
	case "config", "http_addr", "grpc_addr", "store_driver", "store_dsn", "keep_snapshots", "exchange":
		return true
	}
	return false
}

// -----------------------------------------------------------------------------

// Load resolves the settings from flags, environment and defaults, in that
// order of precedence.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s.StoreDriver = strings.ToLower(strings.TrimSpace(s.StoreDriver))
	if s.StoreDriver != "" && s.StoreDSN == "" {
		return nil, fmt.Errorf("store_driver %q needs store_dsn", s.StoreDriver)
	}
	return &s, nil
}
