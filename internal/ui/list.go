package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbook/internal/client"
)

// ListView renders the flight collection and turns row picks into selections.
type ListView struct {
	store *client.Store
}

func NewListView(store *client.Store) *ListView {
	return &ListView{store: store}
}

func (v *ListView) Render(w io.Writer) {
	RenderList(w, v.store.State())
}

// Select marks the flight at the 1-based row index as selected.
func (v *ListView) Select(row int) error {
	flights := v.store.State().Flights
	if row < 1 || row > len(flights) {
		return fmt.Errorf("no flight at row %d", row)
	}
	v.store.SelectFlight(&flights[row-1])
	return nil
}

func RenderList(w io.Writer, st client.State) {
	if st.Loading {
		fmt.Fprintln(w, "Loading flights...")
		return
	}
	if st.Error != "" {
		fmt.Fprintln(w, Red("Error: "+st.Error))
		return
	}

	fmt.Fprintln(w, "Available Flights")
	if len(st.Flights) == 0 {
		fmt.Fprintln(w, Gray("No flights available"))
		return
	}

	rows := make([][]string, 0, len(st.Flights))
	for i, f := range st.Flights {
		rows = append(rows, []string{
			strconv.Itoa(i+1) + ".",
			f.Origin + " to " + f.Destination,
			"Departure: " + formatTime(f.DepartureTime),
			"Arrival: " + formatTime(f.ArrivalTime),
			Green(formatPrice(f.Price)),
		})
	}
	renderTable(w, rows)
}

func formatPrice(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', 2, 64)
}

// renderTable pads every column but the last to its widest cell.
func renderTable(w io.Writer, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, col := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := visibleWidth(col); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for _, row := range rows {
		parts := make([]string, len(row))
		for i, col := range row {
			if i < len(row)-1 {
				col += strings.Repeat(" ", widths[i]-visibleWidth(col))
			}
			parts[i] = col
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

// visibleWidth counts runes outside ANSI escape sequences.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			width++
		}
	}
	return width
}
