package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	regName, regEmail string
	regPass           []byte
	regErr            error

	loginEmail string
	loginPass  []byte
	loginErr   error

	idToken string

	resetEmail string
	resetMsg   string

	me    *models.User
	meErr error

	logoutCalled bool
	pingErr      error
}

func (f *fakeAuth) Register(_ context.Context, name, email string, pass []byte) error {
	f.regName, f.regEmail, f.regPass = name, email, append([]byte(nil), pass...)
	return f.regErr
}
func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) error {
	f.loginEmail, f.loginPass = email, append([]byte(nil), pass...)
	return f.loginErr
}
func (f *fakeAuth) GoogleLogin(_ context.Context, idToken string) error {
	f.idToken = idToken
	return nil
}
func (f *fakeAuth) RequestPasswordReset(_ context.Context, email string) (string, error) {
	f.resetEmail = email
	return f.resetMsg, nil
}
func (f *fakeAuth) WhoAmI(context.Context) (*models.User, error) { return f.me, f.meErr }
func (f *fakeAuth) Logout() error                                 { f.logoutCalled = true; return nil }
func (f *fakeAuth) Ping(context.Context) error                    { return f.pingErr }

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func run(t *testing.T, f *fakeAuth, stdin string, args ...string) (string, *config.Config, error) {
	t.Helper()
	var got *config.Config
	cmd := NewRootCmd(func(cfg *config.Config) (AuthService, error) {
		got = cfg
		return f, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), got, err
}

func TestRegister_FlagsAndPrompt(t *testing.T) {
	stubPassword(t, "pw")
	f := &fakeAuth{}

	out, _, err := run(t, f, "a@x.com\n", "register", "--name", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "Ann", f.regName)
	assert.Equal(t, "a@x.com", f.regEmail)
	assert.Equal(t, "pw", string(f.regPass))
	assert.Contains(t, out, "Enter email")
	assert.Contains(t, out, "Success!")
}

func TestRegister_ErrorPropagates(t *testing.T) {
	stubPassword(t, "pw")
	f := &fakeAuth{regErr: &client.APIError{Status: 409, Message: "User Already Exist. Please Login"}}

	_, _, err := run(t, f, "", "register", "--name", "A", "--email", "a@x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User Already Exist")
}

func TestLogin(t *testing.T) {
	stubPassword(t, "secret")
	f := &fakeAuth{}

	out, _, err := run(t, f, "", "login", "--email", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", f.loginEmail)
	assert.Equal(t, "secret", string(f.loginPass))
	assert.Contains(t, out, "Login successful")
}

func TestLogin_PasswordPromptError(t *testing.T) {
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return nil, errors.New("no tty") }
	t.Cleanup(func() { getPassword = orig })

	_, _, err := run(t, &fakeAuth{}, "", "login", "--email", "a@x.com")
	assert.EqualError(t, err, "no tty")
}

func TestGoogleLogin_Prompted(t *testing.T) {
	f := &fakeAuth{}

	_, _, err := run(t, f, "id-token\n", "glogin")
	require.NoError(t, err)
	assert.Equal(t, "id-token", f.idToken)
}

func TestReset(t *testing.T) {
	f := &fakeAuth{resetMsg: "password reset link sent to your email account"}

	out, _, err := run(t, f, "", "reset", "--email", "A@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A@x.com", f.resetEmail)
	assert.Contains(t, out, "password reset link sent")
}

func TestWhoAmI(t *testing.T) {
	f := &fakeAuth{me: &models.User{ID: "1", Name: "Ann", Email: "a@x.com"}}

	out, _, err := run(t, f, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "id: 1\nname: Ann\nemail: a@x.com\n", out)
}

func TestWhoAmI_Errors(t *testing.T) {
	_, _, err := run(t, &fakeAuth{meErr: services.ErrNotLoggedIn}, "", "whoami")
	assert.ErrorContains(t, err, "not logged in")

	_, _, err = run(t, &fakeAuth{meErr: &client.APIError{Status: 403}}, "", "whoami")
	assert.ErrorContains(t, err, "log in again")
}

func TestLogoutAndPing(t *testing.T) {
	f := &fakeAuth{}
	out, _, err := run(t, f, "", "logout")
	require.NoError(t, err)
	assert.True(t, f.logoutCalled)
	assert.Contains(t, out, "Logged out")

	_, _, err = run(t, &fakeAuth{pingErr: client.ErrUnavailable}, "", "ping")
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestVersion_SkipsServiceSetup(t *testing.T) {
	cmd := NewRootCmd(func(*config.Config) (AuthService, error) {
		t.Fatal("factory must not be called for version")
		return nil, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Build version:")
}

func TestGlobalFlagsOverrideConfig(t *testing.T) {
	t.Setenv(config.EnvServerURL, "http://env:1")
	t.Setenv(config.EnvTokenFile, "")
	tokenFile := filepath.Join(t.TempDir(), "tok")

	_, cfg, err := run(t, &fakeAuth{}, "", "--server", "http://flag:2", "--timeout", "3s", "--token-file", tokenFile, "ping")
	require.NoError(t, err)
	assert.Equal(t, "http://flag:2", cfg.ServerURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, tokenFile, cfg.TokenFile)

	_, cfg, err = run(t, &fakeAuth{}, "", "ping")
	require.NoError(t, err)
	assert.Equal(t, "http://env:1", cfg.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestDefaultServiceFactory_UsesConfiguredTokenFile(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.TokenFile = filepath.Join(t.TempDir(), "tok")

	svc, err := DefaultServiceFactory(cfg)
	require.NoError(t, err)

	_, err = svc.WhoAmI(context.Background())
	assert.ErrorIs(t, err, services.ErrNotLoggedIn)
}
