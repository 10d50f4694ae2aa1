package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

// Environment names.
const (
	Development = "development"
	Production  = "production"
)

type Config struct {
	Environment string   `yaml:"environment" env:"GEODASH_ENV"`
	Server      Server   `yaml:"server"`
	Logging     Logging  `yaml:"logging"`
	Output      Output   `yaml:"output"`
	Fixtures    Fixtures `yaml:"fixtures"`
}

type Server struct {
	Port int `yaml:"port" env:"GEODASH_PORT"`
	// Origin prefixes share links, e.g. "https://geo.example.com".
	Origin string `yaml:"origin" env:"GEODASH_ORIGIN"`
}

type Logging struct {
	Level  string `yaml:"level" env:"GEODASH_LOG_LEVEL"`
	Format string `yaml:"format" env:"GEODASH_LOG_FORMAT"`
}

type Output struct {
	DataDir string `yaml:"data_dir" env:"GEODASH_DATA_DIR"`
}

type Fixtures struct {
	// Path to a fixture file; empty uses the built-in demo set.
	Path string `yaml:"path" env:"GEODASH_FIXTURES"`
}

// ConfigDir returns the XDG config directory for geodash.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "geodash")
}

// DataDir returns the XDG data directory for geodash.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "geodash")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/geodash/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'geodash init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, cfg.validate()
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Environment: Production,
		Server:      Server{Port: 8000, Origin: "http://localhost:8000"},
		Logging:     Logging{Level: "info", Format: "console"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	switch c.Environment {
	case Development, Production:
	default:
		return fmt.Errorf("environment must be %q or %q, got %q", Development, Production, c.Environment)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// IsDevelopment reports whether unknown metrics should fail loudly.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
