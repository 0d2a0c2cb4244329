package flights_service_api

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server implements FlightsServiceServer on top of the flight use cases.
type Server struct {
	flights flights.FlightUseCase
	log     logrus.FieldLogger
}

func NewServer(flights flights.FlightUseCase, log logrus.FieldLogger) *Server {
	return &Server{flights: flights, log: log}
}

func (s *Server) ListFlights(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	list, err := s.flights.List(ctx)
	if err != nil {
		return nil, s.toStatus("list flights", err)
	}
	values := make([]*structpb.Value, 0, len(list))
	for i := range list {
		values = append(values, structpb.NewStructValue(toPBFlight(&list[i])))
	}
	return &structpb.ListValue{Values: values}, nil
}

func (s *Server) GetFlight(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	flight, err := s.flights.GetByID(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("get flight", err)
	}
	return toPBFlight(flight), nil
}

func (s *Server) CreateFlight(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	flight, err := s.flights.Create(ctx, fromPBInput(req))
	if err != nil {
		return nil, s.toStatus("create flight", err)
	}
	return toPBFlight(flight), nil
}

func (s *Server) UpdateFlight(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := req.GetFields()["id"].GetStringValue()
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	flight, err := s.flights.Update(ctx, id, fromPBInput(req))
	if err != nil {
		return nil, s.toStatus("update flight", err)
	}
	return toPBFlight(flight), nil
}

func (s *Server) DeleteFlight(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	flight, err := s.flights.Delete(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("delete flight", err)
	}
	return toPBFlight(flight), nil
}

func (s *Server) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound):
		return status.Error(codes.NotFound, "Flight not found")
	case errors.Is(err, domain.ErrInvalidFlight):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.log.WithError(err).WithField("op", op).Error("grpc flight request failed")
		return status.Error(codes.Internal, "Internal server error")
	}
}

func toPBFlight(f *domain.Flight) *structpb.Struct {
	if f == nil {
		return nil
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":            structpb.NewStringValue(f.ID),
		"origin":        structpb.NewStringValue(f.Origin),
		"destination":   structpb.NewStringValue(f.Destination),
		"departureTime": structpb.NewStringValue(f.DepartureTime),
		"arrivalTime":   structpb.NewStringValue(f.ArrivalTime),
		"price":         structpb.NewNumberValue(f.Price),
	}}
}

// FromPBFlight converts a struct produced by toPBFlight back into a flight.
func FromPBFlight(s *structpb.Struct) domain.Flight {
	return fromPBInput(s).WithID(s.GetFields()["id"].GetStringValue())
}

func fromPBInput(s *structpb.Struct) domain.FlightInput {
	fields := s.GetFields()
	return domain.FlightInput{
		Origin:        fields["origin"].GetStringValue(),
		Destination:   fields["destination"].GetStringValue(),
		DepartureTime: fields["departureTime"].GetStringValue(),
		ArrivalTime:   fields["arrivalTime"].GetStringValue(),
		Price:         fields["price"].GetNumberValue(),
	}
}
