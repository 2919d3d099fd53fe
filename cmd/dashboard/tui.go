package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/config"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/tui"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/tui/themes"
)

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Long: `Open a full-screen dashboard. Switch locations with n/p, categories with
1-4 (0 for the overview), and press r to reload after importing.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringP("location", "l", kpi.AllLocations, "Location to show first")
	cmd.Flags().String("theme", "default", "Color theme (default, light)")
	cmd.Flags().Bool("inline", false, "Render inline instead of on the alternate screen")

	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	location, _ := cmd.Flags().GetString("location")
	inline, _ := cmd.Flags().GetBool("inline")

	theme := themes.ByName(viper.GetString("tui.theme"))

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	return tui.Run(ctx,
		tui.WithSource(store),
		tui.WithEngine(engine),
		tui.WithTheme(theme),
		tui.WithLocation(location),
		tui.WithRoster(config.LoadRoster(viper.GetViper())),
		tui.WithAltScreen(!inline),
	)
}
