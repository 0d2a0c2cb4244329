package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbook/internal/client"
	"github.com/Domenick1991/flightbook/internal/domain"
)

// Draft holds the raw text of the creation form.
type Draft struct {
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	Price         string
}

type formField struct {
	label string
	value func(*Draft) *string
}

var formFields = []formField{
	{"Origin", func(d *Draft) *string { return &d.Origin }},
	{"Destination", func(d *Draft) *string { return &d.Destination }},
	{"Departure Time", func(d *Draft) *string { return &d.DepartureTime }},
	{"Arrival Time", func(d *Draft) *string { return &d.ArrivalTime }},
	{"Price", func(d *Draft) *string { return &d.Price }},
}

// Form is the "Add New Flight" form. The draft is local until Submit.
type Form struct {
	store *client.Store
	draft Draft
	open  bool
}

func NewForm(store *client.Store) *Form {
	return &Form{store: store}
}

func (f *Form) Open()        { f.open = true }
func (f *Form) IsOpen() bool { return f.open }
func (f *Form) Draft() Draft { return f.draft }

func (f *Form) SetDraft(d Draft) {
	f.draft = d
}

// Prompt opens the form and reads each field from in, one line per field.
func (f *Form) Prompt(in io.Reader, out io.Writer) error {
	f.Open()
	fmt.Fprintln(out, "Add New Flight")

	scanner := bufio.NewScanner(in)
	for _, field := range formFields {
		fmt.Fprintf(out, "%s: ", field.label)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		*field.value(&f.draft) = strings.TrimSpace(scanner.Text())
	}
	return nil
}

// Submit dispatches a create for the draft. The draft is reset and the form
// closed whatever the outcome. A price that is not a number is reported
// without contacting the server.
func (f *Form) Submit(ctx context.Context) error {
	draft := f.draft
	f.draft = Draft{}
	f.open = false

	price, err := strconv.ParseFloat(strings.TrimSpace(draft.Price), 64)
	if err != nil {
		return fmt.Errorf("price %q is not a number", draft.Price)
	}

	return f.store.CreateFlight(ctx, domain.FlightInput{
		Origin:        draft.Origin,
		Destination:   draft.Destination,
		DepartureTime: draft.DepartureTime,
		ArrivalTime:   draft.ArrivalTime,
		Price:         price,
	})
}
