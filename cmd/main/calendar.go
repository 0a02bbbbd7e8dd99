package main

import (
	"fmt"
	"time"

	"github.com/arbstatistix/financial-engineering/src/models"
	"github.com/arbstatistix/financial-engineering/src/utils"

	"github.com/spf13/cobra"
)

// -----------------------------------------------------------------------------

func (a *app) calendarCmd() *cobra.Command {
	var date, at string

	c := &cobra.Command{
		Use:   "calendar [config.json]",
		Short: "Check a date against the exchange calendar and market constants",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(args)
			if err != nil {
				return err
			}

			mc := cfg.MarketConstants.OrElse(models.DefaultMarketConstants())
			tc, err := utils.NewTradingCalendar(a.settings.Exchange, mc)
			if err != nil {
				return err
			}
			if tc.Fallback {
				a.logger.Warning("No calendar for exchange %q, using weekdays in UTC", a.settings.Exchange)
			}

			day := time.Now().In(tc.Timezone)
			if date != "" {
				day, err = time.ParseInLocation("2006-01-02", date, tc.Timezone)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exchange: %s (%s)\n", tc.MIC, tc.Timezone)
			fmt.Fprintf(out, "Date: %s\n", day.Format("2006-01-02"))
			fmt.Fprintf(out, " - trading day: %t\n", tc.IsTradingDay(day))
			fmt.Fprintf(out, " - configured holiday: %t\n", tc.IsHoliday(day))

			if next, err := tc.NextTradingDay(day); err == nil {
				fmt.Fprintf(out, " - next trading day: %s\n", next.Format("2006-01-02"))
			}
			if cutoff, ok := tc.ExpiryCutoff(day); ok {
				fmt.Fprintf(out, " - expiry cutoff: %s\n", cutoff.Format(time.RFC3339))
			}
			switch {
			case at != "":
				minute, err := time.ParseInLocation("2006-01-02 15:04", day.Format("2006-01-02")+" "+at, tc.Timezone)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
				fmt.Fprintf(out, " - open at %s: %t\n", minute.Format("15:04"), tc.IsOpenOnMinute(minute))
			case date == "":
				fmt.Fprintf(out, " - open now: %t\n", tc.IsOpenOnMinute(time.Now()))
			}
			fmt.Fprintf(out, " - session minutes: %d\n", tc.SessionMinutes())
			fmt.Fprintf(out, " - sessions per year: %d\n", tc.SessionsPerYear())
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "date to check (YYYY-MM-DD, default today)")
	c.Flags().StringVar(&at, "at", "", "time of day to check against the session (HH:MM)")
	return c
}
