package flights

import (
	"context"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/kafka"
	"github.com/Domenick1991/flightbook/internal/metrics"
	"github.com/Domenick1991/flightbook/internal/repository"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Create(ctx context.Context, input domain.FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id string, input domain.FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id string) (*domain.Flight, error)
}

// FlightCache holds the list of flights. InvalidateFlights advances the
// generation, and SetFlights with an older generation must not store anything.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	FlightsGeneration(ctx context.Context) (int64, error)
	SetFlights(ctx context.Context, generation int64, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type EventProducer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type FlightService struct {
	repo        repository.FlightRepository
	cache       FlightCache
	producer    EventProducer
	eventsTopic string
	log         logrus.FieldLogger
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

// WithEvents publishes a FlightEvent to topic after every successful mutation.
func WithEvents(producer EventProducer, topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithLogger(log logrus.FieldLogger) FlightServiceOption {
	return func(s *FlightService) {
		s.log = log
	}
}

func NewFlightService(repo repository.FlightRepository, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache == nil {
		flights, err := s.repo.FindAll(ctx)
		metrics.RecordFlightOperation("list", err)
		return flights, err
	}

	if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.log.WithError(err).Warn("read flights cache")
	}

	// Taken before the store read so a mutation landing in between makes the
	// fill below a no-op.
	generation, genErr := s.cache.FlightsGeneration(ctx)

	flights, err := s.repo.FindAll(ctx)
	metrics.RecordFlightOperation("list", err)
	if err != nil {
		return nil, err
	}

	switch {
	case genErr != nil:
		s.log.WithError(genErr).Warn("read flights cache generation")
	case len(flights) == 0:
		// A degraded file read also yields an empty list; never pin it.
	default:
		if err := s.cache.SetFlights(ctx, generation, flights); err != nil {
			s.log.WithError(err).Warn("fill flights cache")
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	flight, err := s.repo.FindByID(ctx, id)
	metrics.RecordFlightOperation("get", err)
	return flight, err
}

func (s *FlightService) Create(ctx context.Context, input domain.FlightInput) (*domain.Flight, error) {
	if err := input.Validate(); err != nil {
		metrics.RecordFlightOperation("create", err)
		return nil, err
	}

	flight, err := s.repo.Create(ctx, input)
	metrics.RecordFlightOperation("create", err)
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx, kafka.EventFlightCreated, *flight)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id string, input domain.FlightInput) (*domain.Flight, error) {
	if err := input.Validate(); err != nil {
		metrics.RecordFlightOperation("update", err)
		return nil, err
	}

	flight, err := s.repo.Update(ctx, id, input)
	metrics.RecordFlightOperation("update", err)
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx, kafka.EventFlightUpdated, *flight)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id string) (*domain.Flight, error) {
	flight, err := s.repo.Delete(ctx, id)
	metrics.RecordFlightOperation("delete", err)
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx, kafka.EventFlightDeleted, *flight)
	return flight, nil
}

// afterMutation drops the cached list and announces the change. The mutation
// is already persisted, so failures here are only logged.
func (s *FlightService) afterMutation(ctx context.Context, eventType string, flight domain.Flight) {
	log := s.log.WithFields(logrus.Fields{"event": eventType, "flight_id": flight.ID})

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			log.WithError(err).Warn("invalidate flights cache")
		}
	}

	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, flight.ID, kafka.NewFlightEvent(eventType, flight)); err != nil {
		log.WithError(err).Warn("publish flight event")
	}
}

var _ FlightUseCase = (*FlightService)(nil)
