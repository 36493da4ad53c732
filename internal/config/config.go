package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores relational store connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection string from the DB settings.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Broadcast stores observer fan-out settings.
type Broadcast struct {
	// SnapshotInterval is the period of the full-snapshot re-broadcast.
	SnapshotInterval time.Duration
	// Buffer is the per-observer channel capacity; a full buffer drops.
	Buffer int
}

// Kafka stores position event publishing settings. Empty brokers disable it.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Pprof stores the debug side-server settings. Zero port disables it.
type Pprof struct {
	Port int
	User string
	Pass string
}

// Config stores tracking service settings.
type Config struct {
	Port      int
	DB        DB
	Broadcast Broadcast
	Kafka     Kafka
	Pprof     Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		DB:        DefaultDB(),
		Broadcast: DefaultBroadcast(),
	}

	cfg.Port = envInt("PORT", cfg.Port)
	cfg.DB.Host = envStr("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = envStr("DB_PORT", cfg.DB.Port)
	cfg.DB.User = envStr("DB_USER", cfg.DB.User)
	cfg.DB.Pass = envStr("DB_PASS", cfg.DB.Pass)
	cfg.DB.Name = envStr("DB_NAME", cfg.DB.Name)
	cfg.Broadcast.SnapshotInterval = envDuration("SNAPSHOT_INTERVAL", cfg.Broadcast.SnapshotInterval)
	cfg.Broadcast.Buffer = envInt("BROADCAST_BUFFER", cfg.Broadcast.Buffer)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	cfg.Kafka.Topic = envStr("KAFKA_TOPIC", cfg.Kafka.Topic)
	cfg.Pprof.Port = envInt("PPROF_PORT", cfg.Pprof.Port)
	cfg.Pprof.User = envStr("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envStr("PPROF_PASS", cfg.Pprof.Pass)

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.DurationVar(&cfg.Broadcast.SnapshotInterval, "snapshot-interval",
		cfg.Broadcast.SnapshotInterval, "period of the full snapshot re-broadcast")
	pflag.Parse()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Broadcast.SnapshotInterval <= 0 {
		return fmt.Errorf("invalid snapshot interval: %v", c.Broadcast.SnapshotInterval)
	}
	if c.Broadcast.Buffer <= 0 {
		return fmt.Errorf("invalid broadcast buffer: %d", c.Broadcast.Buffer)
	}
	return nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
