package client

import (
	"context"
	"errors"
	"sync"

	"github.com/Domenick1991/flightbook/internal/domain"
)

// Messages stored in State.Error when the API answers with a non-2xx status.
const (
	ErrMsgFetchFlights = "Failed to fetch flights"
	ErrMsgFetchFlight  = "Failed to fetch flight"
	ErrMsgCreateFlight = "Failed to create flight"
	ErrMsgUpdateFlight = "Failed to update flight"
	ErrMsgDeleteFlight = "Failed to delete flight"
)

type State struct {
	Flights        []domain.Flight
	Loading        bool
	Error          string
	SelectedFlight *domain.Flight
}

// FlightsAPI is the remote side of the store.
type FlightsAPI interface {
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	GetFlight(ctx context.Context, id string) (*domain.Flight, error)
	CreateFlight(ctx context.Context, input domain.FlightInput) (*domain.Flight, error)
	UpdateFlight(ctx context.Context, flight domain.Flight) (*domain.Flight, error)
	DeleteFlight(ctx context.Context, id string) error
}

// Store holds the client-side view of the flight collection. State only
// changes through the action methods; every change is pushed to subscribers.
type Store struct {
	api FlightsAPI

	mu          sync.Mutex
	state       State
	subscribers map[int]func(State)
	nextSub     int
}

func NewStore(api FlightsAPI) *Store {
	return &Store{
		api:         api,
		state:       State{Flights: []domain.Flight{}},
		subscribers: make(map[int]func(State)),
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers fn to receive a snapshot after every transition.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) FetchFlights(ctx context.Context) error {
	s.pending()
	flights, err := s.api.ListFlights(ctx)
	if err != nil {
		return s.rejected(err, ErrMsgFetchFlights)
	}
	s.fulfilled(func(st *State) {
		st.Flights = append([]domain.Flight{}, flights...)
	})
	return nil
}

func (s *Store) FetchFlightByID(ctx context.Context, id string) error {
	s.pending()
	flight, err := s.api.GetFlight(ctx, id)
	if err != nil {
		return s.rejected(err, ErrMsgFetchFlight)
	}
	s.fulfilled(func(st *State) {
		st.SelectedFlight = flight
	})
	return nil
}

func (s *Store) CreateFlight(ctx context.Context, input domain.FlightInput) error {
	s.pending()
	flight, err := s.api.CreateFlight(ctx, input)
	if err != nil {
		return s.rejected(err, ErrMsgCreateFlight)
	}
	s.fulfilled(func(st *State) {
		st.Flights = append(st.Flights, *flight)
	})
	return nil
}

func (s *Store) UpdateFlight(ctx context.Context, flight domain.Flight) error {
	s.pending()
	updated, err := s.api.UpdateFlight(ctx, flight)
	if err != nil {
		return s.rejected(err, ErrMsgUpdateFlight)
	}
	s.fulfilled(func(st *State) {
		for i := range st.Flights {
			if st.Flights[i].ID == updated.ID {
				st.Flights[i] = *updated
				break
			}
		}
	})
	return nil
}

func (s *Store) DeleteFlight(ctx context.Context, id string) error {
	s.pending()
	if err := s.api.DeleteFlight(ctx, id); err != nil {
		return s.rejected(err, ErrMsgDeleteFlight)
	}
	s.fulfilled(func(st *State) {
		kept := make([]domain.Flight, 0, len(st.Flights))
		for _, f := range st.Flights {
			if f.ID != id {
				kept = append(kept, f)
			}
		}
		st.Flights = kept
		if st.SelectedFlight != nil && st.SelectedFlight.ID == id {
			st.SelectedFlight = nil
		}
	})
	return nil
}

// SelectFlight sets or, with nil, clears the selected flight.
func (s *Store) SelectFlight(flight *domain.Flight) {
	s.update(func(st *State) {
		if flight == nil {
			st.SelectedFlight = nil
			return
		}
		selected := *flight
		st.SelectedFlight = &selected
	})
}

func (s *Store) ClearError() {
	s.update(func(st *State) {
		st.Error = ""
	})
}

func (s *Store) pending() {
	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
}

func (s *Store) fulfilled(merge func(*State)) {
	s.update(func(st *State) {
		merge(st)
		st.Loading = false
	})
}

// rejected records the failure. A status error from the API becomes msg,
// transport errors keep their own text.
func (s *Store) rejected(err error, msg string) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		msg = err.Error()
	}
	s.update(func(st *State) {
		st.Loading = false
		st.Error = msg
	})
	return err
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshot()
	subs := make([]func(State), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

// snapshot must be called with mu held.
func (s *Store) snapshot() State {
	snap := s.state
	snap.Flights = make([]domain.Flight, len(s.state.Flights))
	copy(snap.Flights, s.state.Flights)
	if s.state.SelectedFlight != nil {
		selected := *s.state.SelectedFlight
		snap.SelectedFlight = &selected
	}
	return snap
}
