package notify

import (
	"context"

	"github.com/Domenick1991/flightbook/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Notifier reports flight lifecycle events to operators through the log.
type Notifier struct {
	log logrus.FieldLogger
}

func NewNotifier(log logrus.FieldLogger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Send(ctx context.Context, event kafka.FlightEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.WithFields(logrus.Fields{
		"event":       event.Type,
		"flight_id":   event.Flight.ID,
		"route":       event.Flight.Origin + "-" + event.Flight.Destination,
		"departure":   event.Flight.DepartureTime,
		"price":       event.Flight.Price,
		"occurred_at": event.OccurredAt,
	}).Info("flight event")
	return nil
}
