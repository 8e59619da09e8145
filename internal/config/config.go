package config

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/regpulse/regpulse/internal/extraction"
	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/internal/scoring"
	"github.com/regpulse/regpulse/pkg/database"
	"github.com/regpulse/regpulse/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvRegpulseEnv             = "REGPULSE_ENV"
	EnvRegpulseShutdownTimeout = "REGPULSE_SHUTDOWN_TIMEOUT"
	EnvRegpulseVersion         = "REGPULSE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "REGPULSE_DB_HOST",
	Port:            "REGPULSE_DB_PORT",
	Name:            "REGPULSE_DB_NAME",
	User:            "REGPULSE_DB_USER",
	Password:        "REGPULSE_DB_PASSWORD",
	SSLMode:         "REGPULSE_DB_SSL_MODE",
	MaxOpenConns:    "REGPULSE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "REGPULSE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "REGPULSE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "REGPULSE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "REGPULSE_STORAGE_CONTAINER_NAME",
	ConnectionString: "REGPULSE_STORAGE_CONNECTION_STRING",
	MaxListSize:      "REGPULSE_STORAGE_MAX_LIST_SIZE",
}

var scoringEnv = &scoring.Env{
	Mode:        "REGPULSE_SCORING_MODE",
	MaxWorkers:  "REGPULSE_SCORING_MAX_WORKERS",
	MaxRetries:  "REGPULSE_SCORING_MAX_RETRIES",
	RetryWait:   "REGPULSE_SCORING_RETRY_WAIT",
	CallTimeout: "REGPULSE_SCORING_CALL_TIMEOUT",
}

var extractionEnv = &extraction.Env{
	MinLength:         "REGPULSE_EXTRACTION_MIN_LENGTH",
	MinKeywordMatches: "REGPULSE_EXTRACTION_MIN_KEYWORD_MATCHES",
}

var profilesEnv = &profiles.Env{
	Path: "REGPULSE_PROFILES_PATH",
}

// Config is the root configuration for the regpulse service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	API             APIConfig            `toml:"api"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Scoring         scoring.Config       `toml:"scoring"`
	Extraction      extraction.Config    `toml:"extraction"`
	Profiles        profiles.Config      `toml:"profiles"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the REGPULSE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvRegpulseEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Scoring.Merge(&overlay.Scoring)
	c.Extraction.Merge(&overlay.Extraction)
	c.Profiles.Merge(&overlay.Profiles)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Scoring.Finalize(scoringEnv); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Extraction.Finalize(extractionEnv); err != nil {
		return fmt.Errorf("extraction: %w", err)
	}
	if err := c.Profiles.Finalize(profilesEnv); err != nil {
		return fmt.Errorf("profiles: %w", err)
	}
	return nil
}
func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvRegpulseShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvRegpulseVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvRegpulseEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
