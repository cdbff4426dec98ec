package cli

import (
	"bufio"
	"context"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/spf13/cobra"
)

// AuthService is what the commands need from services.AuthService.
type AuthService interface {
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	GoogleLogin(ctx context.Context, idToken string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	WhoAmI(ctx context.Context) (*models.User, error)
	Logout() error
	Ping(ctx context.Context) error
}

type globalFlags struct {
	configFile string
	serverURL  string
	timeout    time.Duration
	tokenFile  string
}

// ServiceFactory builds the AuthService from the resolved configuration.
type ServiceFactory func(cfg *config.Config) (AuthService, error)

// DefaultServiceFactory talks to the real server and caches the token on disk.
func DefaultServiceFactory(cfg *config.Config) (AuthService, error) {
	tokenFile := cfg.TokenFile
	if tokenFile == "" {
		var err error
		if tokenFile, err = services.DefaultTokenFile(); err != nil {
			return nil, err
		}
	}
	return services.NewAuthService(client.NewAPIClient(cfg.ServerURL, cfg.Timeout), tokenFile), nil
}

// App carries state shared by subcommands once the root command has
// resolved configuration.
type App struct {
	auth   AuthService
	reader *bufio.Reader
}

// NewRootCmd creates the root command of the gophauth CLI.
func NewRootCmd(factory ServiceFactory) *cobra.Command {
	flags := &globalFlags{}
	app := &App{}

	cmd := &cobra.Command{
		Use:           "gophauth",
		Short:         "gophauth - command-line client for the gophauth auth server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(flags.configFile)
			if err != nil {
				return err
			}
			pf := cmd.Flags()
			if pf.Changed("server") {
				cfg.ServerURL = flags.serverURL
			}
			if pf.Changed("timeout") {
				cfg.Timeout = flags.timeout
			}
			if pf.Changed("token-file") {
				cfg.TokenFile = flags.tokenFile
			}

			auth, err := factory(cfg)
			if err != nil {
				return err
			}
			app.auth = auth
			app.reader = bufio.NewReader(cmd.InOrStdin())
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "JSON config file path")
	pf.StringVarP(&flags.serverURL, "server", "a", "", "server base URL")
	pf.DurationVar(&flags.timeout, "timeout", 0, "request timeout")
	pf.StringVar(&flags.tokenFile, "token-file", "", "where to cache the bearer token")

	cmd.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newGoogleLoginCmd(app),
		newResetCmd(app),
		newWhoAmICmd(app),
		newLogoutCmd(app),
		newPingCmd(app),
		newVersionCmd(),
	)

	return cmd
}
