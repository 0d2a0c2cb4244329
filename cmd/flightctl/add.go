package main

import (
	"fmt"
	"os"

	"github.com/Domenick1991/flightbook/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new flight",
	Long: `Add a new flight.

Without flags on an interactive terminal, each field is prompted for.

Examples:
  flightctl add --origin NYC --destination LAX \
    --departure 2023-05-15T08:00:00Z --arrival 2023-05-15T11:00:00Z --price 299.99
  flightctl add`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var addDraft ui.Draft

func init() {
	addCmd.Flags().StringVar(&addDraft.Origin, "origin", "", "origin airport")
	addCmd.Flags().StringVar(&addDraft.Destination, "destination", "", "destination airport")
	addCmd.Flags().StringVar(&addDraft.DepartureTime, "departure", "", "departure time (RFC 3339)")
	addCmd.Flags().StringVar(&addDraft.ArrivalTime, "arrival", "", "arrival time (RFC 3339)")
	addCmd.Flags().StringVar(&addDraft.Price, "price", "", "ticket price")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	store := newStore()
	form := ui.NewForm(store)
	out := cmd.OutOrStdout()

	if addDraft == (ui.Draft{}) && ui.IsTerminal(os.Stdin) {
		if err := form.Prompt(cmd.InOrStdin(), out); err != nil {
			return err
		}
	} else {
		form.Open()
		form.SetDraft(addDraft)
	}

	if err := form.Submit(cmd.Context()); err != nil {
		if msg := store.State().Error; msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return err
	}

	flights := store.State().Flights
	created := flights[len(flights)-1]
	fmt.Fprintf(out, "Created flight %s\n", ui.Green(created.ID))
	return nil
}
