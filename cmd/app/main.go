package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbook/config"
	"github.com/Domenick1991/flightbook/internal/bootstrap"
	"github.com/Domenick1991/flightbook/internal/cache"
	"github.com/Domenick1991/flightbook/internal/kafka"
	"github.com/Domenick1991/flightbook/internal/logging"
	"github.com/Domenick1991/flightbook/internal/repository"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
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
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		log.Fatalf("open flight store: %v", err)
	}
	defer closeRepo()

	opts := []flights.FlightServiceOption{flights.WithLogger(log)}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Flights.CacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.WithError(err).Warn("redis unreachable, flight list reads will go to the store")
		}
		opts = append(opts, flights.WithCache(redisCache))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		opts = append(opts, flights.WithEvents(producer, cfg.Kafka.FlightEventsTopic))
	}

	flightService := flights.NewFlightService(repo, opts...)

	if err := bootstrap.Run(ctx, cfg, flightService, log); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func openRepository(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repository.FlightRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewFlightRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.WithField("database", cfg.Database.Name).Info("using postgres flight store")
		return repo, pool.Close, nil
	default:
		opts := []repository.FileOption{repository.WithLogger(log)}
		if cfg.Storage.ReadErrors == config.ReadErrorsFail {
			opts = append(opts, repository.WithFailOnReadError())
		}
		log.WithField("path", cfg.Storage.FilePath()).Info("using file flight store")
		return repository.NewFileFlightRepository(cfg.Storage.FilePath(), opts...), func() {}, nil
	}
}
