package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/cli"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/storage"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Show recent file uploads",
		Args:  cobra.NoArgs,
		RunE:  runSessions,
	}

	cmd.Flags().IntP("limit", "n", storage.DefaultSessionLimit, "Number of uploads to show")
	cmd.Flags().BoolP("verbose", "v", false, "Print the row errors of each upload")

	return cmd
}

func runSessions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	verbose, _ := cmd.Flags().GetBool("verbose")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	sessions, err := store.GetUploadSessions(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load upload sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderSessions(sessions))

	if verbose {
		for _, s := range sessions {
			if len(s.Errors) == 0 {
				continue
			}
			fmt.Fprintln(out, cli.FormatTitle(s.FileName))
			for _, msg := range s.Errors {
				fmt.Fprintln(out, "  "+cli.FormatWarning(msg))
			}
		}
	}
	return nil
}
