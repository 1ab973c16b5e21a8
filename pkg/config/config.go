package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	Notify   NotifyConfig   `yaml:"notify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// NATSConfig configures the optional reminder fan-out. An empty URL
// disables publishing.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type NotifyConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	config := &Config{}
	config.validate()
	return config
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		c.Database.Path = "haruplan.db"
	}

	if c.NATS.URL != "" && c.NATS.Subject == "" {
		c.NATS.Subject = "haruplan.reminders"
	}

	if c.Notify.TickInterval == 0 {
		c.Notify.TickInterval = time.Second
	}
	if c.Notify.TickInterval < 0 {
		return fmt.Errorf("notify tick interval must be positive")
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
