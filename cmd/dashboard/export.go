package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/cli"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/common"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/config"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/service"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/sheets"
)

// newExporter builds the Google Sheets exporter. Tests replace it.
var newExporter = func(ctx context.Context) (service.ViewExporter, error) {
	cfg, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("Google Sheets is not configured; run 'dashboard export auth' or set sheets.service_account_path", err)
	}
	writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	return writer, nil
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export dashboards to Google Sheets",
	}

	sheetsCmd := &cobra.Command{
		Use:   "sheets [location]",
		Short: "Write a dashboard view to a Google Sheets tab",
		Long: `Write the dashboard of one location, or of all locations combined, to a
tab of the configured spreadsheet. The tab is cleared and rewritten on
every export. Use --all to write the combined view and one tab per location.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExportSheets,
	}
	sheetsCmd.Flags().Bool("all", false, "Export the combined view and every location")
	cmd.AddCommand(sheetsCmd)

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Sheets access in the browser",
		Args:  cobra.NoArgs,
		RunE:  runExportAuth,
	}
	authCmd.Flags().String("listen", "localhost:8080", "Address of the local OAuth callback server")
	cmd.AddCommand(authCmd)

	return cmd
}

func runExportSheets(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	all, _ := cmd.Flags().GetBool("all")

	selectors := []string{kpi.AllLocations}
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		if all {
			return fmt.Errorf("--all cannot be combined with a location")
		}
		selectors = []string{strings.TrimSpace(args[0])}
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	index, err := store.GetLocationIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	if index.Len() == 0 {
		return common.NewUserError("No data to export. Import a file first.", common.ErrNoData)
	}
	if all {
		selectors = append(selectors, index.Locations()...)
	}

	exporter, err := newExporter(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var spreadsheetID string
	for _, selector := range selectors {
		view := engine.QueryView(index, selector)
		if !view.HasData() {
			fmt.Fprintln(out, cli.FormatWarning("Skipping "+selector+": no data"))
			continue
		}

		spreadsheetID, err = exporter.Export(ctx, view)
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", selector, err)
		}
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Exported %s to tab %q", selector, sheets.TabTitle(selector))))
	}

	if spreadsheetID != "" {
		fmt.Fprintln(out, cli.FormatInfo("https://docs.google.com/spreadsheets/d/"+spreadsheetID))
	}
	return nil
}

func runExportAuth(cmd *cobra.Command, _ []string) error {
	listen, _ := cmd.Flags().GetString("listen")

	clientID := firstSet(viper.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
	clientSecret := firstSet(viper.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
	if clientID == "" || clientSecret == "" {
		return common.NewUserError("Set sheets.client_id and sheets.client_secret before authorizing", common.ErrMissingConfig)
	}

	tokenFile := config.SheetsTokenFile(viper.GetViper())
	token, err := sheets.AuthenticateOAuth2Interactive(cmd.Context(), sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		ListenAddr:   listen,
		Timeout:      5 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess("Authorized. Token saved to "+tokenFile))
	if token.RefreshToken != "" {
		fmt.Fprintln(out, cli.FormatInfo("Add this to your config as sheets.refresh_token:"))
		fmt.Fprintln(out, "  "+token.RefreshToken)
	}
	return nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
