package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alorle/smogwatch/internal/config"
	"github.com/alorle/smogwatch/internal/memory"
	"github.com/alorle/smogwatch/internal/report"
)

func newTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top <country>",
		Short: "Print the most polluted cities of a country",
		Example: `  smogwatch top Poland
  smogwatch top --limit 3 czech republic`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if limit > 0 {
				cfg.CityLimit = limit
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			source, encyclopedia := newUpstreams(cfg, logger)
			service := newPollutionService(cfg, source, encyclopedia, memory.NewReportRepository(), logger)

			rep, err := service.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), rep)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of cities to print (default CITY_LIMIT)")
	return cmd
}

func printReport(w io.Writer, rep report.Report) error {
	var b strings.Builder
	fmt.Fprintln(&b, rep.Header())
	if rep.Empty() {
		fmt.Fprintln(&b, "No measurements found")
	}
	for i, c := range rep.Cities {
		fmt.Fprintf(&b, "%2d. %s (%.1f %s)\n", i+1, c.Name, c.Value, c.Unit)
		fmt.Fprintf(&b, "    %s\n", c.Description)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
