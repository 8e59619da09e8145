package scoring

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds batch scoring parameters.
type Config struct {
	Mode       Mode `toml:"mode"`
	MaxWorkers int  `toml:"max_workers"`
	// MaxRetries of -1 disables retries; 0 selects the default of 2.
	MaxRetries  int    `toml:"max_retries"`
	RetryWait   string `toml:"retry_wait"`
	CallTimeout string `toml:"call_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Mode        string
	MaxWorkers  string
	MaxRetries  string
	RetryWait   string
	CallTimeout string
}

// RetryWaitDuration returns RetryWait as a time.Duration.
func (c *Config) RetryWaitDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryWait)
	return d
}

// CallTimeoutDuration returns CallTimeout as a time.Duration.
func (c *Config) CallTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.CallTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.MaxWorkers != 0 {
		c.MaxWorkers = overlay.MaxWorkers
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.RetryWait != "" {
		c.RetryWait = overlay.RetryWait
	}
	if overlay.CallTimeout != "" {
		c.CallTimeout = overlay.CallTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.Mode == "" {
		c.Mode = ModeAgent
	}
	if c.MaxWorkers == 0 {
		c.MaxWorkers = 50
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 2
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryWait == "" {
		c.RetryWait = "1s"
	}
	if c.CallTimeout == "" {
		c.CallTimeout = "90s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Mode != "" {
		if v := os.Getenv(env.Mode); v != "" {
			c.Mode = Mode(v)
		}
	}
	if env.MaxWorkers != "" {
		if v, err := strconv.Atoi(os.Getenv(env.MaxWorkers)); err == nil && v > 0 {
			c.MaxWorkers = v
		}
	}
	if env.MaxRetries != "" {
		if v, err := strconv.Atoi(os.Getenv(env.MaxRetries)); err == nil && v >= -1 {
			if v < 0 {
				v = 0
			}
			c.MaxRetries = v
		}
	}
	if env.RetryWait != "" {
		if v := os.Getenv(env.RetryWait); v != "" {
			c.RetryWait = v
		}
	}
	if env.CallTimeout != "" {
		if v := os.Getenv(env.CallTimeout); v != "" {
			c.CallTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.Mode != ModeAgent && c.Mode != ModeSynthetic {
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if _, err := time.ParseDuration(c.RetryWait); err != nil {
		return fmt.Errorf("invalid retry_wait: %w", err)
	}
	if _, err := time.ParseDuration(c.CallTimeout); err != nil {
		return fmt.Errorf("invalid call_timeout: %w", err)
	}
	return nil
}
