package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/common"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/config"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/ingest"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/storage"
)

// databasePath resolves database.path, falling back to the default location.
func databasePath() string {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	return config.ExpandPath(dbPath)
}

// initStorage opens the database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		closeStore(store)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("Opened database", "path", store.Path())
	return store, nil
}

func closeStore(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// loadEngine builds the query engine from the configured keyword table.
func loadEngine() (*kpi.Engine, error) {
	classifier, err := config.LoadClassifier(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("Invalid category keywords in config", err)
	}
	return kpi.NewEngine(classifier), nil
}

// collectFiles expands globs and directories into the list of importable files.
func collectFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			err = filepath.WalkDir(pattern, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if _, formatErr := ingest.DetectFormat(path); formatErr == nil {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("failed to scan directory %s: %w", pattern, err)
			}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", nil)
	}
	return files, nil
}
