package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const flightColumns = `id, origin, destination, departure_time, arrival_time, price`

const flightsSchema = `CREATE TABLE IF NOT EXISTS flights (
	id             TEXT PRIMARY KEY,
	origin         TEXT NOT NULL,
	destination    TEXT NOT NULL,
	departure_time TEXT NOT NULL,
	arrival_time   TEXT NOT NULL,
	price          DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PGFlightRepository struct {
	db    *pgxpool.Pool
	newID func() (string, error)
}

func NewFlightRepository(db *pgxpool.Pool) *PGFlightRepository {
	return &PGFlightRepository{db: db, newID: newFlightID}
}

// EnsureSchema creates the flights table when it does not exist yet.
func (r *PGFlightRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, flightsSchema); err != nil {
		return fmt.Errorf("create flights table: %w", err)
	}
	return nil
}

// FindAll returns flights in insertion order, matching the file store.
func (r *PGFlightRepository) FindAll(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) FindByID(ctx context.Context, id string) (*domain.Flight, error) {
	return scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
}

func (r *PGFlightRepository) Create(ctx context.Context, input domain.FlightInput) (*domain.Flight, error) {
	id, err := r.newID()
	if err != nil {
		return nil, fmt.Errorf("generate flight id: %w", err)
	}
	return scanFlight(r.db.QueryRow(ctx, `INSERT INTO flights (id, origin, destination, departure_time, arrival_time, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+flightColumns,
		id, input.Origin, input.Destination, input.DepartureTime, input.ArrivalTime, input.Price))
}

func (r *PGFlightRepository) Update(ctx context.Context, id string, input domain.FlightInput) (*domain.Flight, error) {
	return scanFlight(r.db.QueryRow(ctx, `UPDATE flights
		SET origin=$2, destination=$3, departure_time=$4, arrival_time=$5, price=$6
		WHERE id=$1
		RETURNING `+flightColumns,
		id, input.Origin, input.Destination, input.DepartureTime, input.ArrivalTime, input.Price))
}

func (r *PGFlightRepository) Delete(ctx context.Context, id string) (*domain.Flight, error) {
	return scanFlight(r.db.QueryRow(ctx, `DELETE FROM flights WHERE id=$1 RETURNING `+flightColumns, id))
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
