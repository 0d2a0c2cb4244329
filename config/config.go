package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"

	ReadErrorsEmpty = "empty"
	ReadErrorsFail  = "fail"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Flights  FlightsConfig  `yaml:"flights"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type GRPCConfig struct {
	// Address is optional; the gRPC server is not started when empty.
	Address string `yaml:"address"`
}

type StorageConfig struct {
	Driver     string `yaml:"driver"`
	DataDir    string `yaml:"data_dir"`
	FileName   string `yaml:"file_name"`
	ReadErrors string `yaml:"read_errors"`
}

// FilePath is the location of the JSON flight collection.
func (s StorageConfig) FilePath() string {
	return filepath.Join(s.DataDir, s.FileName)
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	FlightEventsTopic string   `yaml:"flight_events_topic"`
	GroupID           string   `yaml:"group_id"`
}

type FlightsConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{Address: ":3000"},
		Storage: StorageConfig{
			Driver:     StorageDriverFile,
			DataDir:    "data",
			FileName:   "flights.json",
			ReadErrors: ReadErrorsEmpty,
		},
		Database: DatabaseConfig{Port: 5432, SSLMode: "disable"},
		Kafka:    KafkaConfig{FlightEventsTopic: "flight-events", GroupID: "flight-notifier"},
		Flights:  FlightsConfig{CacheTTLSeconds: 30},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
// PORT, when set, overrides the port of the HTTP address.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		host, _, err := net.SplitHostPort(cfg.HTTP.Address)
		if err != nil {
			host = ""
		}
		cfg.HTTP.Address = net.JoinHostPort(host, port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverFile:
		if c.Storage.FileName == "" {
			return errors.New("storage.file_name is required for the file driver")
		}
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("database.host and database.name are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Storage.ReadErrors {
	case ReadErrorsEmpty, ReadErrorsFail:
	default:
		return fmt.Errorf("storage.read_errors must be %q or %q", ReadErrorsEmpty, ReadErrorsFail)
	}
	return nil
}
