package main

import (
	"github.com/Domenick1991/flightbook/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all flights",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store := newStore()
	err := store.FetchFlights(cmd.Context())

	ui.NewListView(store).Render(cmd.OutOrStdout())
	if err != nil {
		return errShown
	}
	return nil
}
