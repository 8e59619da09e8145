package extraction

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds document validation thresholds.
type Config struct {
	MinLength         int `toml:"min_length"`
	MinKeywordMatches int `toml:"min_keyword_matches"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	MinLength         string
	MinKeywordMatches string
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
	if overlay.MinLength != 0 {
		c.MinLength = overlay.MinLength
	}
	if overlay.MinKeywordMatches != 0 {
		c.MinKeywordMatches = overlay.MinKeywordMatches
	}
}

func (c *Config) loadDefaults() {
	if c.MinLength == 0 {
		c.MinLength = 50
	}
	if c.MinKeywordMatches == 0 {
		c.MinKeywordMatches = 1
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MinLength != "" {
		if v, err := strconv.Atoi(os.Getenv(env.MinLength)); err == nil && v > 0 {
			c.MinLength = v
		}
	}
	if env.MinKeywordMatches != "" {
		if v, err := strconv.Atoi(os.Getenv(env.MinKeywordMatches)); err == nil && v > 0 {
			c.MinKeywordMatches = v
		}
	}
}

func (c *Config) validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("min_length must be positive")
	}
	if c.MinKeywordMatches < 1 {
		return fmt.Errorf("min_keyword_matches must be positive")
	}
	return nil
}
