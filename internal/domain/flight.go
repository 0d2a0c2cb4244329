package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrStoreUnavailable = errors.New("flight store unavailable")
	ErrInvalidFlight    = errors.New("invalid flight")
)

type Flight struct {
	ID            string  `json:"id"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Price         float64 `json:"price"`
}

// FlightInput is a flight as supplied by a client; the id is always assigned by the store.
type FlightInput struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Price         float64 `json:"price"`
}

func (in FlightInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Origin) == "":
		return fmt.Errorf("%w: origin is required", ErrInvalidFlight)
	case strings.TrimSpace(in.Destination) == "":
		return fmt.Errorf("%w: destination is required", ErrInvalidFlight)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidFlight)
	}
	return nil
}

// WithID builds the stored record for in.
func (in FlightInput) WithID(id string) Flight {
	return Flight{
		ID:            id,
		Origin:        in.Origin,
		Destination:   in.Destination,
		DepartureTime: in.DepartureTime,
		ArrivalTime:   in.ArrivalTime,
		Price:         in.Price,
	}
}

func (f Flight) Input() FlightInput {
	return FlightInput{
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Price:         f.Price,
	}
}
