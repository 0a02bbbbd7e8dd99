package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// -----------------------------------------------------------------------------

func (a *app) queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "query <jsonpath> [config.json]",
		Short:   "Evaluate a JSONPath expression against the raw configuration",
		Example: `  fecfg query '$.market_constants.exchange_holidays[0]' config.json`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(args[1:])
			if err != nil {
				return err
			}

			v, err := cfg.Query(args[0])
			if err != nil {
				return err
			}

			raw, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}
