package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/cli"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/common"
)

func locationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage stored locations",
		Args:  cobra.NoArgs,
		RunE:  runLocationsList,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List locations with their record counts",
		Args:  cobra.NoArgs,
		RunE:  runLocationsList,
	})

	deleteCmd := &cobra.Command{
		Use:   "delete <location>",
		Short: "Delete a location and all of its records",
		Args:  cobra.ExactArgs(1),
		RunE:  runLocationsDelete,
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.AddCommand(deleteCmd)

	return cmd
}

func runLocationsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	locations, err := store.GetLocations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list locations: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderLocations(locations))
	return nil
}

func runLocationsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	location := args[0]
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if !skipConfirm {
		question := fmt.Sprintf("Delete %s and all of its records?", location)
		ok, err := cli.Confirm(ctx, cli.NewLineReader(cmd.InOrStdin()), cmd.OutOrStdout(), question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Cancelled"))
			return nil
		}
	}

	removed, err := store.DeleteLocation(ctx, location)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(fmt.Sprintf("Location %q does not exist", location), err)
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %s (%d records)", location, removed)))
	return nil
}
