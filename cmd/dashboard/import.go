package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/cli"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/common"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/config"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/ingest"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/service"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|dir|glob>...",
		Short: "Import KPI sheets (.csv or .xlsx)",
		Long: `Import monthly KPI sheets into the local database.

Each import replaces every record previously stored for the location it
covers. Use --location to load a whole file into one location; without it
rows are grouped by their Location column.`,
		Example: `  dashboard import kalina-april.xlsx --location Kalina
  dashboard import ./uploads/*.csv
  dashboard import region.xlsx --sheet "April" --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("location", "l", "", "Location that receives every row of the file")
	cmd.Flags().String("sheet", "", "Worksheet to read from .xlsx files (default: first sheet)")
	cmd.Flags().Bool("dry-run", false, "Parse and validate without saving")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	return cmd
}

// importOptions carries the flags of one import run.
type importOptions struct {
	Location    string
	Sheet       string
	MaxFileSize int64
	DryRun      bool
}

// fileOutcome summarizes one imported file.
type fileOutcome struct {
	Err       error
	Locations map[string]int
	File      string
	Skipped   []string
}

func (o fileOutcome) records() int {
	total := 0
	for _, n := range o.Locations {
		total += n
	}
	return total
}

func (o fileOutcome) locationNames() []string {
	names := make([]string, 0, len(o.Locations))
	for name := range o.Locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	location, _ := cmd.Flags().GetString("location")
	sheet, _ := cmd.Flags().GetString("sheet")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	opts := importOptions{
		Location:    strings.TrimSpace(location),
		Sheet:       sheet,
		DryRun:      dryRun,
		MaxFileSize: config.ImportMaxFileSize(viper.GetViper(), ingest.DefaultMaxFileSize),
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	slog.Info("Importing KPI files", "file_count", len(files), "location", opts.Location, "dry_run", dryRun)

	var store service.Storage
	if !dryRun {
		sqlite, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer closeStore(sqlite)
		store = sqlite
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import", "Files imported before the interrupt were saved.")
	ctx = handler.HandleInterrupts(ctx)
	defer handler.Stop()

	var bar *progressbar.ProgressBar
	if !noProgress && len(files) > 1 {
		bar = newProgressBar(cmd.ErrOrStderr(), len(files))
	}

	outcomes := make([]fileOutcome, 0, len(files))
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}

		outcomes = append(outcomes, importFile(ctx, store, file, opts))

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	failed := printImportReport(out, outcomes, dryRun)
	common.LogInfo("Import finished", common.Fields{
		"files":       len(outcomes),
		"failed":      failed,
		"interrupted": handler.WasInterrupted(),
	})

	if handler.WasInterrupted() {
		return nil
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(files))
	}
	return nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing files...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// importFile parses one file and replaces the records of every location it covers.
// A nil store parses without saving.
func importFile(ctx context.Context, store service.Storage, path string, opts importOptions) fileOutcome {
	outcome := fileOutcome{File: path}
	fileName := filepath.Base(path)

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	session := &model.UploadSession{
		FileName: fileName,
		Location: sessionLocation(opts.Location),
		FileSize: size,
		Status:   model.UploadProcessing,
	}
	if store != nil {
		if err := store.SaveUploadSession(ctx, session); err != nil {
			slog.Warn("Failed to record upload session", "file", fileName, "error", err)
		}
	}

	index, skipped, err := parseUpload(path, opts)
	outcome.Skipped = skipped
	if err == nil && store != nil {
		err = store.ReplaceIndexRecords(ctx, fileName, index)
	}

	if err != nil {
		common.LogError(err, "Import failed", common.Fields{"file": path})
		outcome.Err = err
		session.Status = model.UploadError
		session.Errors = append([]string{err.Error()}, skipped...)
	} else {
		outcome.Locations = make(map[string]int, index.Len())
		for _, loc := range index.Locations() {
			outcome.Locations[loc] = len(index.Rows(loc))
		}
		session.Status = model.UploadSuccess
		session.Errors = skipped
		session.RecordsCount = outcome.records()
		if opts.Location == "" {
			session.Location = strings.Join(index.Locations(), ", ")
		}
	}

	if store != nil && session.ID != "" {
		if err := store.SaveUploadSession(ctx, session); err != nil {
			slog.Warn("Failed to update upload session", "file", fileName, "error", err)
		}
	}

	common.LogDebug("Processed file", common.Fields{
		"file":    path,
		"records": outcome.records(),
		"skipped": len(skipped),
	})
	return outcome
}

// perRowLocation labels sessions whose rows carry their own locations.
const perRowLocation = "(per row)"

func sessionLocation(location string) string {
	if location == "" {
		return perRowLocation
	}
	return location
}

// parseUpload reads a file and assigns its rows to locations.
func parseUpload(path string, opts importOptions) (*model.LocationIndex, []string, error) {
	result, err := ingest.ParseFile(path, ingest.Options{
		Location:    opts.Location,
		Sheet:       opts.Sheet,
		MaxFileSize: opts.MaxFileSize,
	})
	if err != nil {
		return nil, result.Errors, err
	}

	if opts.Location != "" {
		index := model.NewLocationIndex()
		index.Add(opts.Location, result.Rows...)
		return index, result.Errors, nil
	}

	index, err := ingest.GroupByLocation(result.Rows)
	if err != nil {
		if errors.Is(err, ingest.ErrMissingLocation) {
			err = fmt.Errorf("%w; pass --location or fill the Location column", err)
		}
		return nil, result.Errors, err
	}
	return index, result.Errors, nil
}

// printImportReport writes one line per file and returns how many failed.
func printImportReport(w io.Writer, outcomes []fileOutcome, dryRun bool) int {
	verb := "Imported"
	if dryRun {
		verb = "Validated"
	}

	failed := 0
	for _, o := range outcomes {
		name := filepath.Base(o.File)
		if o.Err != nil {
			failed++
			fmt.Fprintln(w, cli.FormatError(fmt.Sprintf("%s: %v", name, o.Err)))
		} else {
			fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("%s %d records from %s (%s)",
				verb, o.records(), name, strings.Join(o.locationNames(), ", "))))
		}
		for _, msg := range o.Skipped {
			fmt.Fprintln(w, "  "+cli.FormatWarning(msg))
		}
	}
	return failed
}
