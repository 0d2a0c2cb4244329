package main

import (
	"fmt"

	"github.com/Domenick1991/flightbook/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show flight details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	store := newStore()
	if err := store.FetchFlightByID(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("%s: %w", store.State().Error, err)
	}

	ui.NewDetailView(store).Render(cmd.OutOrStdout())
	return nil
}
