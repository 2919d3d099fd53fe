package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/cli"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/ingest"
)

func sampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample [path]",
		Short: "Write a sample upload template",
		Long: `Write a template with the expected columns and a few example rows.
The format follows the extension of path (.csv or .xlsx). Without a path
the CSV template is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSample,
	}
}

func runSample(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ingest.WriteSampleCSV(cmd.OutOrStdout())
	}

	path := args[0]
	format, err := ingest.DetectFormat(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if format == ingest.FormatXLSX {
		err = ingest.WriteSampleXLSX(f)
	} else {
		err = ingest.WriteSampleCSV(f)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write sample: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Wrote sample template to "+path))
	return nil
}
