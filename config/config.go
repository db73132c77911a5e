package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Catalog CatalogConfig `yaml:"catalog"`
	Worker  WorkerConfig  `yaml:"worker"`
}

type HTTPConfig struct {
	Address         string `yaml:"address"`
	ShutdownSeconds int    `yaml:"shutdown_seconds"`
}

// RedisConfig enables the flight list cache when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig enables reservation events when Brokers is not empty.
type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	ReservationTopic   string   `yaml:"reservation_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type CatalogConfig struct {
	FlightsCacheTTL int          `yaml:"flights_cache_ttl_seconds"`
	Flights         []SeedFlight `yaml:"flights"`
}

// SeedFlight is a catalog entry loaded at startup. Departure uses the
// "yyyy-MM-dd HH:mm" layout.
type SeedFlight struct {
	FlightNumber   string `yaml:"flight_number"`
	Destination    string `yaml:"destination"`
	Departure      string `yaml:"departure"`
	AvailableSeats int    `yaml:"available_seats"`
}

type WorkerConfig struct {
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// Default returns the configuration used when no file is given: the sample
// catalog, no cache and no event broker.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{Address: ":8080", ShutdownSeconds: 5},
		Kafka: KafkaConfig{
			ReservationTopic:   "reservations",
			NotificationsTopic: "reservation-notifications",
			GroupID:            "reservation-notifier",
		},
		Catalog: CatalogConfig{
			FlightsCacheTTL: 30,
			Flights: []SeedFlight{
				{FlightNumber: "FL101", Destination: "New York", Departure: "2025-12-20 09:00", AvailableSeats: 10},
				{FlightNumber: "FL102", Destination: "New York", Departure: "2025-12-20 15:30", AvailableSeats: 5},
				{FlightNumber: "FL201", Destination: "London", Departure: "2025-12-21 11:00", AvailableSeats: 8},
				{FlightNumber: "FL301", Destination: "California", Departure: "2025-12-25 11:00", AvailableSeats: 12},
			},
		},
		Worker: WorkerConfig{MaxRetries: 3, RetryBackoff: 500 * time.Millisecond},
	}
}

// LoadConfig reads path over the defaults. Sections missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Path returns CONFIG_PATH or "config.yaml".
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
