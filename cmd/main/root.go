package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/arbstatistix/financial-engineering/src/config"
	"github.com/arbstatistix/financial-engineering/src/helpers"
	"github.com/arbstatistix/financial-engineering/src/logger"
	"github.com/arbstatistix/financial-engineering/src/settings"
	"github.com/arbstatistix/financial-engineering/src/storage"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// -----------------------------------------------------------------------------

// app carries what every command needs once flags are parsed.
type app struct {
	v        *viper.Viper
	settings *settings.Settings
	logger   *logger.Logger
	errors   *helpers.ErrorHandler
	stderr   io.Writer
}

// -----------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	a := &app{v: settings.New()}

	var (
		flat       bool
		exportPath string
		format     string
		record     bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:           "fecfg [config.json]",
		Short:         "Load and inspect a pipeline configuration",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			config.WriteSummary(out, cfg)

			if flat {
				if err := config.ExportFlat(out, cfg.Flatten(), format); err != nil {
					return err
				}
			}
			if exportPath != "" {
				if err := cfg.Save(exportPath, format); err != nil {
					return err
				}
				a.logger.Info("Flat configuration written to %s", exportPath)
			}
			if record {
				if err := a.record(out, cfg); err != nil {
					return err
				}
			}
			if debug {
				spew.Fdump(a.stderr, cfg.MConfig)
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "config.json", "configuration file (the positional argument wins)")
	pf.String("store-driver", "", "snapshot store driver: sqlite or postgres")
	pf.String("store-dsn", "", "snapshot store path or connection string")
	pf.Int("keep-snapshots", 20, "snapshots kept per source after --record")
	pf.String("exchange", "xnse", "exchange MIC for the trading calendar")

	cmd.Flags().BoolVar(&flat, "flat", false, "print the flattened configuration")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the flattened configuration to a file")
	cmd.Flags().StringVar(&format, "format", config.FormatEnv, "flat format: env, json, yaml or toml")
	cmd.Flags().BoolVar(&record, "record", false, "store a snapshot and print changes since the previous one")
	cmd.Flags().BoolVar(&debug, "debug", false, "dump the parsed configuration to stderr")

	cmd.AddCommand(a.serveCmd(), a.calendarCmd(), a.queryCmd())
	return cmd
}

// -----------------------------------------------------------------------------

func (a *app) setup(cmd *cobra.Command) error {
	if err := settings.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	st, err := settings.Load(a.v)
	if err != nil {
		return err
	}

	a.settings = st
	a.stderr = cmd.ErrOrStderr()
	a.logger = logger.NewLoggerTo(a.stderr, nil, "main")
	a.errors = helpers.NewErrorHandler(logger.NewLoggerTo(a.stderr, nil, "ErrorHandler"))
	return nil
}

// -----------------------------------------------------------------------------

// load reads the configuration named by args or the config setting. A
// failure is reported here and surfaces as errReported.
func (a *app) load(args []string) (*config.Config, error) {
	path := a.configPath(args)
	cfg, err := config.NewConfig(path)
	if err != nil {
		return nil, a.loadFailed(path, err)
	}
	a.loaded(cfg)
	return cfg, nil
}

func (a *app) configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.settings.Config
}

func (a *app) loadFailed(path string, err error) error {
	a.errors.Handle(err, "load configuration")
	fmt.Fprintf(a.stderr, "Failed to load configuration from %s\n", path)
	return errReported
}

// loaded switches to the configuration's own logger settings, if any, and
// reports its notices.
func (a *app) loaded(cfg *config.Config) {
	if l := cfg.LoggerSettings(); l != nil {
		a.logger = logger.NewLoggerTo(a.stderr, l, "main")
	}
	for _, n := range cfg.Notices {
		a.logger.Warning("%s", n)
	}
}

// -----------------------------------------------------------------------------

// record stores the flat configuration and prints what changed since the
// last snapshot of the same file.
func (a *app) record(out io.Writer, cfg *config.Config) error {
	if a.settings.StoreDriver == "" {
		return fmt.Errorf("--record needs --store-driver and --store-dsn")
	}

	store, err := storage.NewSnapshotStore(a.settings.StoreDriver, a.settings.StoreDSN, a.logger)
	if err != nil {
		return err
	}
	if err := store.Initialize(); err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer store.Close()

	source, err := filepath.Abs(cfg.Source)
	if err != nil {
		source = cfg.Source
	}

	prev, err := store.LatestSnapshot(source)
	if err != nil {
		return fmt.Errorf("failed to read previous snapshot: %w", err)
	}

	flat := cfg.Flatten()
	snap := storage.NewSnapshot(source, flat)
	if err := store.SaveSnapshot(snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if err := store.PruneSnapshots(source, a.settings.KeepSnapshots); err != nil {
		a.logger.Warning("Failed to prune snapshots: %v", err)
	}

	fmt.Fprintf(out, "Snapshot %s recorded (%d keys)\n", snap.ID, len(flat))
	if prev == nil {
		fmt.Fprintln(out, "No previous snapshot.")
		return nil
	}

	changes := config.Diff(prev.Entries, flat)
	fmt.Fprintf(out, "Changes since %s: %d\n", prev.LoadedAt.Format("2006-01-02 15:04:05"), len(changes))
	for _, c := range changes {
		switch c.Kind {
		case config.ChangeAdded:
			fmt.Fprintf(out, " + %s=%s\n", c.Key, c.New)
		case config.ChangeRemoved:
			fmt.Fprintf(out, " - %s=%s\n", c.Key, c.Old)
		default:
			fmt.Fprintf(out, " ~ %s: %s -> %s\n", c.Key, c.Old, c.New)
		}
	}
	return nil
}
