package cli

import (
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/buildinfo"
	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a password account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			name, err := textOrPrompt(app.reader, name, "Enter name", out)
			if err != nil {
				return err
			}
			email, err := textOrPrompt(app.reader, email, "Enter email", out)
			if err != nil {
				return err
			}
			password, err := getPassword(out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			if err := app.auth.Register(cmd.Context(), name, email, password); err != nil {
				return err
			}
			cmd.Println("Success!")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			email, err := textOrPrompt(app.reader, email, "Enter email", out)
			if err != nil {
				return err
			}
			password, err := getPassword(out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			if err := app.auth.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			cmd.Println("Login successful")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newGoogleLoginCmd(app *App) *cobra.Command {
	var idToken string

	cmd := &cobra.Command{
		Use:   "glogin",
		Short: "Log in with a Google ID token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			idToken, err := textOrPrompt(app.reader, idToken, "Paste Google ID token", cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := app.auth.GoogleLogin(cmd.Context(), idToken); err != nil {
				return err
			}
			cmd.Println("Login successful")
			return nil
		},
	}

	cmd.Flags().StringVar(&idToken, "id-token", "", "Google ID token")
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Request a password reset link",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := textOrPrompt(app.reader, email, "Enter email", cmd.OutOrStdout())
			if err != nil {
				return err
			}
			msg, err := app.auth.RequestPasswordReset(cmd.Context(), email)
			if err != nil {
				return err
			}
			cmd.Println(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email, matched exactly")
	return cmd
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user behind the cached token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := app.auth.WhoAmI(cmd.Context())
			switch {
			case errors.Is(err, services.ErrNotLoggedIn):
				return errors.New("not logged in, run 'gophauth login' first")
			case errors.Is(err, client.ErrUnauthorized):
				return errors.New("session expired or invalid, log in again")
			case err != nil:
				return err
			}
			cmd.Printf("id: %s\nname: %s\nemail: %s\n", u.ID, u.Name, u.Email)
			return nil
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.auth.Logout(); err != nil {
				return err
			}
			cmd.Println("Logged out")
			return nil
		},
	}
}

func newPingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.auth.Ping(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("OK")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print build information",
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
