package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/flightbook/internal/client"
	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory flights API.
type fakeAPI struct {
	flights []domain.Flight
	created []domain.FlightInput
	deleted []string
	err     error
}

func (f *fakeAPI) ListFlights(context.Context) ([]domain.Flight, error) {
	return f.flights, f.err
}

func (f *fakeAPI) GetFlight(_ context.Context, id string) (*domain.Flight, error) {
	for i := range f.flights {
		if f.flights[i].ID == id {
			return &f.flights[i], nil
		}
	}
	return nil, &client.APIError{Status: 404}
}

func (f *fakeAPI) CreateFlight(_ context.Context, input domain.FlightInput) (*domain.Flight, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, input)
	flight := input.WithID("new")
	return &flight, nil
}

func (f *fakeAPI) UpdateFlight(_ context.Context, flight domain.Flight) (*domain.Flight, error) {
	return &flight, f.err
}

func (f *fakeAPI) DeleteFlight(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

var (
	nycToLax = domain.Flight{ID: "1", Origin: "NYC", Destination: "LAX", DepartureTime: "May 15 08:00", ArrivalTime: "May 15 11:00", Price: 299.99}
	svoToLed = domain.Flight{ID: "2", Origin: "SVO", Destination: "LED", DepartureTime: "Jan 10 09:00", ArrivalTime: "Jan 10 10:30", Price: 50}
)

func newLoadedStore(t *testing.T, api *fakeAPI) *client.Store {
	t.Helper()
	SetColorEnabled(false)
	t.Cleanup(func() { SetColorEnabled(false) })
	store := client.NewStore(api)
	require.NoError(t, store.FetchFlights(context.Background()))
	return store
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestColors(t *testing.T) {
	SetColorEnabled(true)
	assert.True(t, ColorEnabled())
	assert.Equal(t, "\033[31mx\033[0m", Red("x"))
	assert.Equal(t, "\033[32mx\033[0m", Green("x"))
	assert.Equal(t, 1, visibleWidth(Green("x")))

	SetColorEnabled(false)
	assert.Equal(t, "x", Red("x"))
}

func TestFormatTime(t *testing.T) {
	ts := "2023-05-15T08:00:00Z"
	parsed, _ := time.Parse(time.RFC3339, ts)
	assert.Equal(t, parsed.Local().Format("2006-01-02 15:04"), formatTime(ts))
	assert.Equal(t, "tomorrow", formatTime("tomorrow"))
}

func TestRenderList(t *testing.T) {
	store := newLoadedStore(t, &fakeAPI{flights: []domain.Flight{nycToLax, svoToLed}})

	var out bytes.Buffer
	NewListView(store).Render(&out)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Available Flights", lines[0])
	assert.Equal(t, "1.  NYC to LAX  Departure: May 15 08:00  Arrival: May 15 11:00  $299.99", lines[1])
	assert.Equal(t, "2.  SVO to LED  Departure: Jan 10 09:00  Arrival: Jan 10 10:30  $50.00", lines[2])
}

func TestRenderList_States(t *testing.T) {
	SetColorEnabled(false)
	testCases := []struct {
		name  string
		state client.State
		want  string
	}{
		{"loading", client.State{Loading: true, Error: "ignored"}, "Loading flights...\n"},
		{"error", client.State{Error: "Failed to fetch flights"}, "Error: Failed to fetch flights\n"},
		{"empty", client.State{}, "Available Flights\nNo flights available\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			RenderList(&out, tc.state)
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestListView_Select(t *testing.T) {
	store := newLoadedStore(t, &fakeAPI{flights: []domain.Flight{nycToLax, svoToLed}})
	view := NewListView(store)

	require.NoError(t, view.Select(2))
	assert.Equal(t, svoToLed, *store.State().SelectedFlight)

	assert.Error(t, view.Select(0))
	assert.Error(t, view.Select(3))
}

func TestDetailView_Render(t *testing.T) {
	store := newLoadedStore(t, &fakeAPI{flights: []domain.Flight{nycToLax}})
	view := NewDetailView(store)

	var out bytes.Buffer
	view.Render(&out)
	assert.Empty(t, out.String())

	store.SelectFlight(&nycToLax)
	view.Render(&out)
	assert.Equal(t, "Flight Details\n"+
		"NYC → LAX\n"+
		"Flight ID:  1\n"+
		"Departure:  May 15 08:00\n"+
		"Arrival:    May 15 11:00\n"+
		"Price:      $299.99\n", out.String())
}

func TestDetailView_Close(t *testing.T) {
	store := newLoadedStore(t, &fakeAPI{flights: []domain.Flight{nycToLax}})
	store.SelectFlight(&nycToLax)

	NewDetailView(store).Close()

	assert.Nil(t, store.State().SelectedFlight)
}

func TestDetailView_Delete(t *testing.T) {
	api := &fakeAPI{flights: []domain.Flight{nycToLax, svoToLed}}
	store := newLoadedStore(t, api)
	view := NewDetailView(store)

	require.NoError(t, view.Delete(context.Background()))
	assert.Empty(t, api.deleted)

	store.SelectFlight(&nycToLax)
	require.NoError(t, view.Delete(context.Background()))

	assert.Equal(t, []string{"1"}, api.deleted)
	st := store.State()
	assert.Nil(t, st.SelectedFlight)
	assert.Equal(t, []domain.Flight{svoToLed}, st.Flights)
}

func TestDetailView_DeleteFailureStillDeselects(t *testing.T) {
	api := &fakeAPI{flights: []domain.Flight{nycToLax}}
	store := newLoadedStore(t, api)
	store.SelectFlight(&nycToLax)
	api.err = &client.APIError{Status: 500}

	err := NewDetailView(store).Delete(context.Background())

	require.Error(t, err)
	st := store.State()
	assert.Nil(t, st.SelectedFlight)
	assert.Equal(t, client.ErrMsgDeleteFlight, st.Error)
}

func TestForm_PromptAndSubmit(t *testing.T) {
	api := &fakeAPI{}
	store := newLoadedStore(t, api)
	form := NewForm(store)

	var out bytes.Buffer
	in := strings.NewReader("NYC\nLAX\n2023-05-15T08:00:00Z\n2023-05-15T11:00:00Z\n 299.99 \n")
	require.NoError(t, form.Prompt(in, &out))
	assert.True(t, form.IsOpen())
	assert.Contains(t, out.String(), "Departure Time: ")

	require.NoError(t, form.Submit(context.Background()))

	assert.Equal(t, []domain.FlightInput{{
		Origin:        "NYC",
		Destination:   "LAX",
		DepartureTime: "2023-05-15T08:00:00Z",
		ArrivalTime:   "2023-05-15T11:00:00Z",
		Price:         299.99,
	}}, api.created)
	assert.False(t, form.IsOpen())
	assert.Equal(t, Draft{}, form.Draft())
	require.Len(t, store.State().Flights, 1)
	assert.Equal(t, "new", store.State().Flights[0].ID)
}

func TestForm_PromptShortInput(t *testing.T) {
	form := NewForm(client.NewStore(&fakeAPI{}))

	err := form.Prompt(strings.NewReader("NYC\nLAX\n"), &bytes.Buffer{})

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestForm_SubmitResetsOnFailure(t *testing.T) {
	api := &fakeAPI{}
	store := newLoadedStore(t, api)
	form := NewForm(store)

	form.Open()
	form.SetDraft(Draft{Origin: "NYC", Destination: "LAX", Price: "abc"})
	require.Error(t, form.Submit(context.Background()))
	assert.Empty(t, api.created)
	assert.False(t, form.IsOpen())
	assert.Equal(t, Draft{}, form.Draft())

	api.err = errors.New("connection refused")
	form.Open()
	form.SetDraft(Draft{Origin: "NYC", Destination: "LAX", Price: "10"})
	require.Error(t, form.Submit(context.Background()))
	assert.False(t, form.IsOpen())
	assert.Equal(t, Draft{}, form.Draft())
	assert.Equal(t, "connection refused", store.State().Error)
}
