package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// messageReader is the subset of *kafka.Reader the consumer needs.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer reads FlightEvents from one topic as part of a consumer group.
type Consumer struct {
	reader messageReader
	log    logrus.FieldLogger
}

func NewConsumer(brokers []string, groupID, topic string, log logrus.FieldLogger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &Consumer{reader: reader, log: log.WithField("topic", topic)}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeFlightEvents hands every decoded event to handle until ctx is done
// or handle fails. Messages that are not FlightEvents are logged and skipped.
// Cancellation is not an error.
func (c *Consumer) ConsumeFlightEvents(ctx context.Context, handle func(context.Context, FlightEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("read flight event: %w", err)
		}

		event, err := DecodeFlightEvent(msg)
		if err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"partition": msg.Partition,
				"offset":    msg.Offset,
			}).Warn("skipping malformed flight event")
			continue
		}

		if err := handle(ctx, event); err != nil {
			return fmt.Errorf("handle %s for flight %s: %w", event.Type, event.Flight.ID, err)
		}
	}
}

func DecodeFlightEvent(msg kafka.Message) (FlightEvent, error) {
	var event FlightEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return FlightEvent{}, err
	}
	if event.Type == "" {
		return FlightEvent{}, errors.New("flight event without type")
	}
	return event, nil
}
