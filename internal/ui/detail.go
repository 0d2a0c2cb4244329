package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/Domenick1991/flightbook/internal/client"
)

type DetailView struct {
	store *client.Store
}

func NewDetailView(store *client.Store) *DetailView {
	return &DetailView{store: store}
}

func (v *DetailView) Render(w io.Writer) {
	RenderDetail(w, v.store.State())
}

// Close clears the selection.
func (v *DetailView) Close() {
	v.store.SelectFlight(nil)
}

// Delete removes the selected flight and clears the selection. It is a no-op
// without a selection.
func (v *DetailView) Delete(ctx context.Context) error {
	selected := v.store.State().SelectedFlight
	if selected == nil {
		return nil
	}
	err := v.store.DeleteFlight(ctx, selected.ID)
	v.store.SelectFlight(nil)
	return err
}

// RenderDetail writes nothing when no flight is selected.
func RenderDetail(w io.Writer, st client.State) {
	f := st.SelectedFlight
	if f == nil {
		return
	}

	fmt.Fprintln(w, "Flight Details")
	if st.Loading {
		fmt.Fprintln(w, "Loading...")
		return
	}

	fmt.Fprintf(w, "%s → %s\n", f.Origin, f.Destination)
	renderTable(w, [][]string{
		{"Flight ID:", f.ID},
		{"Departure:", formatTime(f.DepartureTime)},
		{"Arrival:", formatTime(f.ArrivalTime)},
		{"Price:", Green(formatPrice(f.Price))},
	})
}
