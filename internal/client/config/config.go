package config

import (
	"os"
	"time"
)

const (
	EnvServerURL = "GOPHAUTH_SERVER_URL"
	EnvTokenFile = "GOPHAUTH_TOKEN_FILE"
)

// Config holds runtime settings for the gophauth CLI.
//
// Fields:
//   - ServerURL: base URL of the auth server.
//   - Timeout: per-request HTTP timeout.
//   - TokenFile: where the bearer token is cached; empty selects the user
//     config directory.
type Config struct {
	ServerURL string
	Timeout   time.Duration
	TokenFile string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Timeout = 10 * time.Second
	c.TokenFile = ""
}

// LoadConfig applies defaults, then the JSON file at path (when not empty),
// then the environment.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path != "" {
		if err := parseJson(cfg, path); err != nil {
			return nil, err
		}
	}
	parseEnv(cfg)
	return cfg, nil
}

func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvTokenFile); v != "" {
		cfg.TokenFile = v
	}
}
