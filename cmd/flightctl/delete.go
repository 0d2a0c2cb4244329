package main

import (
	"fmt"

	"github.com/Domenick1991/flightbook/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a flight",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	store := newStore()
	if err := store.FetchFlightByID(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("%s: %w", store.State().Error, err)
	}
	if err := ui.NewDetailView(store).Delete(cmd.Context()); err != nil {
		return fmt.Errorf("%s: %w", store.State().Error, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted flight %s\n", ui.Green(args[0]))
	return nil
}
