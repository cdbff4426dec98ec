// Package cli provides the gophauth command-line client.
//
// Commands map one-to-one onto the server's auth endpoints:
//
//	gophauth register [--name N] [--email E]   create a password account
//	gophauth login [--email E]                  log in and cache the token
//	gophauth glogin [--id-token T]              log in with a Google ID token
//	gophauth reset [--email E]                  request a password reset link
//	gophauth whoami                             show the cached token's user
//	gophauth logout                             forget the cached token
//	gophauth ping                               check server liveness
//	gophauth version                            print build information
//
// Missing values are prompted for; passwords are always read without echo.
// Global flags --config, --server, --timeout and --token-file override the
// config package's defaults, JSON file and environment.
package cli
