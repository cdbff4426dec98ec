package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations
// accept both "2h" strings and integer nanoseconds.
type JsonConfig struct {
	ServerAddress   string         `json:"server_address"`
	Storage         string         `json:"storage"`
	DatabaseDSN     string         `json:"database_dsn"`
	SecretKey       string         `json:"secret_key"`
	OAuthClientID   string         `json:"oauth_client_id"`
	TokenValidity   timex.Duration `json:"token_validity"`
	BaseURL         string         `json:"base_url"`
	LogLevel        string         `json:"log_level"`
	LogConsole      *bool          `json:"log_console"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c/-config. Keys missing
// from the file keep their current value. An unreadable or invalid file
// panics.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.ServerAddress, c.ServerAddress)
	setString(&config.Storage, c.Storage)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.OAuthClientID, c.OAuthClientID)
	setString(&config.BaseURL, c.BaseURL)
	setString(&config.LogLevel, c.LogLevel)
	if c.TokenValidity.Duration != 0 {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.LogConsole != nil {
		config.LogConsole = *c.LogConsole
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
