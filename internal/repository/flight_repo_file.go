package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxIDAttempts = 8

// FileFlightRepository keeps the flight collection as a single JSON array on
// disk. Every operation runs its whole read-modify-write cycle under mu, so
// writers inside one process never lose updates. Other processes writing the
// same file are not coordinated with.
type FileFlightRepository struct {
	mu         sync.Mutex
	path       string
	failOnRead bool
	newID      func() (string, error)
	log        logrus.FieldLogger
}

type FileOption func(*FileFlightRepository)

// WithFailOnReadError makes unreadable or corrupt files surface as
// domain.ErrStoreUnavailable instead of an empty collection.
func WithFailOnReadError() FileOption {
	return func(r *FileFlightRepository) {
		r.failOnRead = true
	}
}

func WithIDGenerator(fn func() (string, error)) FileOption {
	return func(r *FileFlightRepository) {
		r.newID = fn
	}
}

func WithLogger(log logrus.FieldLogger) FileOption {
	return func(r *FileFlightRepository) {
		r.log = log
	}
}

func NewFileFlightRepository(path string, opts ...FileOption) *FileFlightRepository {
	r := &FileFlightRepository{
		path:  path,
		newID: newFlightID,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithField("store", path)
	return r
}

func (r *FileFlightRepository) FindAll(ctx context.Context) ([]domain.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *FileFlightRepository) FindByID(ctx context.Context, id string) (*domain.Flight, error) {
	flights, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(flights, id); i >= 0 {
		return &flights[i], nil
	}
	return nil, domain.ErrFlightNotFound
}

func (r *FileFlightRepository) Create(ctx context.Context, input domain.FlightInput) (*domain.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	flights, err := r.load()
	if err != nil {
		return nil, err
	}

	id, err := r.uniqueID(flights)
	if err != nil {
		return nil, err
	}

	flight := input.WithID(id)
	flights = append(flights, flight)
	if err := r.save(flights); err != nil {
		return nil, fmt.Errorf("create flight: %w", err)
	}
	r.log.WithField("flight_id", id).Debug("flight created")
	return &flight, nil
}

func (r *FileFlightRepository) Update(ctx context.Context, id string, input domain.FlightInput) (*domain.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	flights, err := r.load()
	if err != nil {
		return nil, err
	}

	i := indexOf(flights, id)
	if i < 0 {
		return nil, domain.ErrFlightNotFound
	}

	flights[i] = input.WithID(id)
	if err := r.save(flights); err != nil {
		return nil, fmt.Errorf("update flight %s: %w", id, err)
	}
	updated := flights[i]
	return &updated, nil
}

func (r *FileFlightRepository) Delete(ctx context.Context, id string) (*domain.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	flights, err := r.load()
	if err != nil {
		return nil, err
	}

	i := indexOf(flights, id)
	if i < 0 {
		return nil, domain.ErrFlightNotFound
	}

	deleted := flights[i]
	flights = append(flights[:i], flights[i+1:]...)
	if err := r.save(flights); err != nil {
		return nil, fmt.Errorf("delete flight %s: %w", id, err)
	}
	return &deleted, nil
}

// load must be called with mu held. A missing file (or directory) is created
// holding an empty array.
func (r *FileFlightRepository) load() ([]domain.Flight, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		empty := []domain.Flight{}
		if err := r.save(empty); err != nil {
			return r.readFailure(err)
		}
		r.log.Info("initialized empty flight store")
		return empty, nil
	}
	if err != nil {
		return r.readFailure(err)
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return r.readFailure(err)
	}
	if flights == nil {
		flights = []domain.Flight{}
	}
	return flights, nil
}

func (r *FileFlightRepository) readFailure(err error) ([]domain.Flight, error) {
	r.log.WithError(err).Warn("error reading flights data")
	if r.failOnRead {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return []domain.Flight{}, nil
}

// save replaces the file through a rename so readers never observe a partial array.
func (r *FileFlightRepository) save(flights []domain.Flight) error {
	data, err := json.MarshalIndent(flights, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, r.path)
}

func (r *FileFlightRepository) uniqueID(flights []domain.Flight) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := r.newID()
		if err != nil {
			return "", fmt.Errorf("generate flight id: %w", err)
		}
		if indexOf(flights, id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("generate flight id: no unique id after retries")
}

func indexOf(flights []domain.Flight, id string) int {
	for i := range flights {
		if flights[i].ID == id {
			return i
		}
	}
	return -1
}

// newFlightID returns a UUIDv7, which sorts by creation time.
func newFlightID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

var _ FlightRepository = (*FileFlightRepository)(nil)
