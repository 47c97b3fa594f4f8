package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/stopwatch"
)

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Court     CourtConfig     `yaml:"court"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// CourtConfig holds the game timings. Durations use Go syntax ("2m", "5s").
type CourtConfig struct {
	Threshold       time.Duration `yaml:"threshold"`
	TickInterval    time.Duration `yaml:"tick_interval"`
	MessageMin      time.Duration `yaml:"message_min"`
	MessageMax      time.Duration `yaml:"message_max"`
	FeedCapacity    int           `yaml:"feed_capacity"`
	DisplayInterval time.Duration `yaml:"display_interval"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		DB: DBConfig{
			Path: "courtroom.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Court: CourtConfig{
			Threshold:       court.DefaultThreshold,
			TickInterval:    court.DefaultTickInterval,
			MessageMin:      court.DefaultMessageMin,
			MessageMax:      court.DefaultMessageMax,
			FeedCapacity:    court.DefaultFeedCapacity,
			DisplayInterval: stopwatch.DefaultRefresh,
			IdleTimeout:     court.DefaultIdleTimeout,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("COURTROOM_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("COURTROOM_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("COURTROOM_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COURTROOM_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("COURTROOM_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath := os.Getenv("COURTROOM_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("COURTROOM_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("COURTROOM_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if err := durationFromEnv("COURTROOM_COURT_THRESHOLD", &cfg.Court.Threshold); err != nil {
		return Config{}, err
	}
	if err := durationFromEnv("COURTROOM_COURT_TICK", &cfg.Court.TickInterval); err != nil {
		return Config{}, err
	}
	if err := durationFromEnv("COURTROOM_COURT_IDLE_TIMEOUT", &cfg.Court.IdleTimeout); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the transport mode and the court timings.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Transport.Mode == TransportHTTP && (c.Server.Port < 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return c.CourtTimings().Validate()
}

// CourtTimings converts the court section to the session configuration.
func (c Config) CourtTimings() court.Config {
	return court.Config{
		Threshold:       c.Court.Threshold,
		TickInterval:    c.Court.TickInterval,
		MessageMin:      c.Court.MessageMin,
		MessageMax:      c.Court.MessageMax,
		FeedCapacity:    c.Court.FeedCapacity,
		DisplayInterval: c.Court.DisplayInterval,
		IdleTimeout:     c.Court.IdleTimeout,
	}
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func durationFromEnv(name string, dst *time.Duration) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = d
	return nil
}
