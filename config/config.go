// Package config loads process configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr        string        `env:"MAKO_LISTEN_ADDR" envDefault:":9000"`
	JournalDir        string        `env:"MAKO_JOURNAL_DIR" envDefault:"./journal-data"`
	KafkaBrokers      []string      `env:"MAKO_KAFKA_BROKERS" envSeparator:","`
	EventTopic        string        `env:"MAKO_EVENT_TOPIC" envDefault:"mako.events"`
	OrderTopic        string        `env:"MAKO_ORDER_TOPIC" envDefault:"mako.orders"`
	OrderGroupID      string        `env:"MAKO_ORDER_GROUP_ID" envDefault:"mako-engine"`
	BroadcastInterval time.Duration `env:"MAKO_BROADCAST_INTERVAL" envDefault:"250ms"`
	Debug             bool          `env:"MAKO_DEBUG" envDefault:"false"`
}

// Load reads .env if present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// KafkaEnabled reports whether the Kafka ingress/egress jobs should run.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
