package main

import (
	"fmt"
	"strconv"

	"github.com/Domenick1991/flightbook/internal/ui"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a flight",
	Long: `Update fields of an existing flight. Fields without a flag keep their
current value.

Examples:
  flightctl update 0190f5c2-... --price 199
  flightctl update 0190f5c2-... --destination SFO --arrival 2023-05-15T11:30:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var updateDraft ui.Draft

func init() {
	updateCmd.Flags().StringVar(&updateDraft.Origin, "origin", "", "origin airport")
	updateCmd.Flags().StringVar(&updateDraft.Destination, "destination", "", "destination airport")
	updateCmd.Flags().StringVar(&updateDraft.DepartureTime, "departure", "", "departure time (RFC 3339)")
	updateCmd.Flags().StringVar(&updateDraft.ArrivalTime, "arrival", "", "arrival time (RFC 3339)")
	updateCmd.Flags().StringVar(&updateDraft.Price, "price", "", "ticket price")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if updateDraft == (ui.Draft{}) {
		return fmt.Errorf("nothing to update: set at least one field flag")
	}

	store := newStore()
	if err := store.FetchFlightByID(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("%s: %w", store.State().Error, err)
	}
	flight := *store.State().SelectedFlight

	if updateDraft.Origin != "" {
		flight.Origin = updateDraft.Origin
	}
	if updateDraft.Destination != "" {
		flight.Destination = updateDraft.Destination
	}
	if updateDraft.DepartureTime != "" {
		flight.DepartureTime = updateDraft.DepartureTime
	}
	if updateDraft.ArrivalTime != "" {
		flight.ArrivalTime = updateDraft.ArrivalTime
	}
	if updateDraft.Price != "" {
		price, err := strconv.ParseFloat(updateDraft.Price, 64)
		if err != nil {
			return fmt.Errorf("price %q is not a number", updateDraft.Price)
		}
		flight.Price = price
	}

	if err := store.UpdateFlight(cmd.Context(), flight); err != nil {
		return fmt.Errorf("%s: %w", store.State().Error, err)
	}

	store.SelectFlight(&flight)
	ui.NewDetailView(store).Render(cmd.OutOrStdout())
	return nil
}
