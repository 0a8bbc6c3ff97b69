package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cyclopcam/dbh"
)

// Config is the portal's JSON config file.
// The HMAC session secret is deliberately NOT part of this file; it comes from
// the SESSION_SECRET environment variable.
type Config struct {
	DB            dbh.DBConfig `json:"db"`            // Backing store. Empty driver means sqlite at 'quorum.sqlite'
	HTTPPort      string       `json:"httpPort"`      // eg ":8080"
	SecureCookies bool         `json:"secureCookies"` // Set the Secure attribute on session cookies (on in production)
}

func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		filename = "quorum.json"
	}
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Error loading %v: %w", filename, err)
	}
	cfg := &Config{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("Error loading as JSON %v: %w", filename, err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.DB.Driver == "" {
		c.DB = dbh.MakeSqliteConfig("quorum.sqlite")
	}
	if c.HTTPPort == "" {
		c.HTTPPort = ":8080"
	}
}

// SessionSecret reads the shared HMAC key from the environment.
// An empty secret is a deployment error; the caller treats it as fatal.
func SessionSecret() string {
	return os.Getenv("SESSION_SECRET")
}
