package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/its-camilo/AgenticNodes/internal/domain"
)

// DefaultJobTimeout bounds a simulation run end to end.
const DefaultJobTimeout = 5 * time.Minute

// DefaultServerURL is the local simulation service.
const DefaultServerURL = "http://localhost:8000"

// Duration is a time.Duration that unmarshals from YAML strings like "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the client configuration loaded from YAML.
type Config struct {
	ServerURL            string   `yaml:"server_url"`
	JobTimeout           Duration `yaml:"job_timeout"`
	DefaultBuyerLocation string   `yaml:"default_buyer_location"`
	SimulateDisruptions  bool     `yaml:"simulate_disruptions"`
	LogFile              string   `yaml:"log_file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ServerURL:            DefaultServerURL,
		JobTimeout:           Duration(DefaultJobTimeout),
		DefaultBuyerLocation: domain.DefaultBuyerLocation,
	}
}

// Parser handles loading and validating client configuration files.
type Parser struct{}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	return &Parser{}
}

// LoadFromFile loads configuration from a YAML file. An empty path yields
// pure defaults; unset fields fall back to their defaults too.
func (p *Parser) LoadFromFile(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	p.applyDefaults(cfg)

	if err := p.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (p *Parser) applyDefaults(cfg *Config) {
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.JobTimeout == 0 {
		cfg.JobTimeout = Duration(DefaultJobTimeout)
	}
	if cfg.DefaultBuyerLocation == "" {
		cfg.DefaultBuyerLocation = domain.DefaultBuyerLocation
	}
}

// Validate checks the loaded configuration.
func (p *Parser) Validate(cfg *Config) error {
	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("server_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server_url must use http or https, got %q", cfg.ServerURL)
	}
	if cfg.JobTimeout.Std() <= 0 {
		return fmt.Errorf("job_timeout must be positive")
	}
	return nil
}
