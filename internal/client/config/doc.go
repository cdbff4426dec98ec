// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file passed to LoadConfig (the CLI's --config flag).
//  3. Environment variables GOPHAUTH_SERVER_URL and GOPHAUTH_TOKEN_FILE.
//
// Command-line flags are applied on top by the cli package.
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "timeout": "10s",
//	  "token_file": "/home/me/.config/gophauth/token"
//	}
package config
