package repository

import (
	"context"

	"github.com/Domenick1991/flightbook/internal/domain"
)

// FlightRepository is the record store contract. Lookups of an unknown id
// return domain.ErrFlightNotFound and never modify the collection.
type FlightRepository interface {
	FindAll(ctx context.Context) ([]domain.Flight, error)
	FindByID(ctx context.Context, id string) (*domain.Flight, error)
	Create(ctx context.Context, input domain.FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id string, input domain.FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id string) (*domain.Flight, error)
}
