package config

import (
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvOAuthClientID = "OAUTH_CLIENTID"
	EnvTokenKey      = "TOKEN_KEY"
	EnvDatabaseDSN   = "DATABASE_DSN"
	EnvServerAddress = "SERVER_ADDRESS"
	EnvBaseURL       = "BASE_URL"
	EnvLogLevel      = "LOG_LEVEL"
	EnvStorage       = "STORAGE"
)

// parseEnv loads a dotenv file into the process environment and overlays the
// recognised variables. The file given with -env must exist; without the flag
// a .env in the working directory is loaded if present. Variables already set
// in the environment win over the file.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	lookup(&config.OAuthClientID, EnvOAuthClientID)
	lookup(&config.SecretKey, EnvTokenKey)
	lookup(&config.DatabaseDSN, EnvDatabaseDSN)
	lookup(&config.ServerAddress, EnvServerAddress)
	lookup(&config.BaseURL, EnvBaseURL)
	lookup(&config.LogLevel, EnvLogLevel)
	lookup(&config.Storage, EnvStorage)
}

func lookup(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
