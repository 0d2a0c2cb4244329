package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbook/config"
	"github.com/Domenick1991/flightbook/internal/kafka"
	"github.com/Domenick1991/flightbook/internal/logging"
	"github.com/Domenick1991/flightbook/internal/notify"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load() // optional .env for local runs

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("init logging: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("kafka.brokers must be configured for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightEventsTopic, log)
	defer consumer.Close()

	notifier := notify.NewNotifier(log)

	log.WithField("topic", cfg.Kafka.FlightEventsTopic).Info("consuming flight events")
	err = consumer.ConsumeFlightEvents(ctx, notifier.Send)
	if err != nil {
		log.WithError(err).Error("consumer stopped")
		return
	}
	log.Info("worker stopped")
}
