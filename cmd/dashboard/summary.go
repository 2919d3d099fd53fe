package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/cli"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/config"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show throughput, labour and parts for every location",
		Long: `Show the headline figures of each location side by side with a combined
regional row. Locations come from locations.roster in the config file when
set, otherwise from the stored data.`,
		Args: cobra.NoArgs,
		RunE: runSummary,
	}

	cmd.Flags().StringSlice("locations", nil, "Locations to include (overrides the configured roster)")

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	index, err := store.GetLocationIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	locations, _ := cmd.Flags().GetStringSlice("locations")
	if len(locations) == 0 {
		locations = config.LoadRoster(viper.GetViper())
	}
	if len(locations) == 0 {
		locations = index.Locations()
	}
	if len(locations) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No data yet. Import a file first."))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRegionalSummary(kpi.SummarizeRegion(index, locations)))
	return nil
}
