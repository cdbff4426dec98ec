// Package services contains server-side business logic. UserService handles
// registration, password and Google login, password reset token issuance and
// bearer token authentication.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/identity"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/notify"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/dmitrijs2005/gophauth/internal/server/services")

// UserService orchestrates the credential store, password hasher, token
// signer and identity provider for each authentication use case.
type UserService struct {
	repomanager   repomanager.RepositoryManager
	hasher        cryptox.PasswordHasher
	verifier      identity.Verifier
	notifier      notify.Notifier
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
	baseURL       string
}

// NewUserService wires a UserService from its collaborators and server config.
func NewUserService(m repomanager.RepositoryManager, h cryptox.PasswordHasher, v identity.Verifier,
	n notify.Notifier, l logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:   m,
		hasher:        h,
		verifier:      v,
		notifier:      n,
		logger:        l.With("module", "user_service"),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
		baseURL:       cfg.BaseURL,
	}
}

// Register creates a password account. name, email and password must be
// non-blank; the email is stored lowercased and trimmed.
func (s *UserService) Register(ctx context.Context, name, email, password string) (err error) {
	ctx, span := tracer.Start(ctx, "UserService.Register")
	defer func() { endSpan(span, err) }()

	if common.IsBlank(name) || common.IsBlank(email) || common.IsBlank(password) {
		return common.ErrorValidation
	}
	email = common.NormalizeEmail(email)
	errb := oops.In("users").With("email", email)

	repo := s.repomanager.Users(s.repomanager.DB())

	_, err = repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return errb.Wrapf(err, "error searching user")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return errb.Wrapf(err, "error hashing password")
	}

	if _, err := repo.Create(ctx, &models.User{Name: name, Email: email, Password: hash}); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		return errb.Wrapf(err, "error creating user")
	}

	return nil
}

// Login checks email/password and returns a signed bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (token string, err error) {
	ctx, span := tracer.Start(ctx, "UserService.Login")
	defer func() { endSpan(span, err) }()

	if common.IsBlank(email) || common.IsBlank(password) {
		return "", common.ErrorValidation
	}
	email = common.NormalizeEmail(email)
	errb := oops.In("users").With("email", email)

	user, err := s.repomanager.Users(s.repomanager.DB()).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", errb.Wrapf(err, "error searching user")
	}

	// accounts created through Google sign-in have no password
	if !user.HasPassword() {
		return "", common.ErrorInvalidCredentials
	}

	ok, err := s.hasher.Compare(user.Password, password)
	if err != nil {
		return "", errb.Wrapf(err, "error comparing password")
	}
	if !ok {
		return "", common.ErrorInvalidCredentials
	}

	return s.issueToken(user.ID, email)
}

// RequestPasswordReset makes sure the account with exactly this email has a
// reset token and hands the reset link to the notifier. The token is created
// on the first request and reused afterwards.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (token *models.PasswordResetToken, err error) {
	ctx, span := tracer.Start(ctx, "UserService.RequestPasswordReset")
	defer func() { endSpan(span, err) }()

	errb := oops.In("password_reset").With("email", email)

	user, err := s.repomanager.Users(s.repomanager.DB()).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, errb.Wrapf(err, "error searching user")
	}

	token, err = s.ensureResetToken(ctx, user.ID)
	if err != nil {
		return nil, errb.With("user_id", user.ID).Wrapf(err, "error issuing reset token")
	}

	link, err := notify.ResetLink(s.baseURL, user.ID, token.Token)
	if err != nil {
		s.logger.Warn(ctx, "cannot build reset link", "user_id", user.ID, "error", err)
		return token, nil
	}
	if err := s.notifier.SendPasswordReset(ctx, user, link); err != nil {
		s.logger.Warn(ctx, "reset link delivery failed", "user_id", user.ID, "error", err)
	}

	return token, nil
}

func (s *UserService) ensureResetToken(ctx context.Context, userID string) (*models.PasswordResetToken, error) {
	var token *models.PasswordResetToken

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.ResetTokens(tx)

		existing, err := repo.FindByUserID(ctx, userID)
		if err == nil {
			token = existing
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		value, err := common.MakeRandHexString(common.ResetTokenSize)
		if err != nil {
			return err
		}
		token, err = repo.Create(ctx, &models.PasswordResetToken{UserID: userID, Token: value})
		return err
	})

	// a concurrent request created the token first
	if errors.Is(err, common.ErrorAlreadyExists) {
		return s.repomanager.ResetTokens(s.repomanager.DB()).FindByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return token, nil
}

// GoogleLogin verifies a Google ID token, creates a password-less account
// for unknown emails and returns a signed bearer token.
func (s *UserService) GoogleLogin(ctx context.Context, idToken string) (token string, err error) {
	ctx, span := tracer.Start(ctx, "UserService.GoogleLogin")
	defer func() { endSpan(span, err) }()

	ident, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return "", oops.In("google_login").Wrapf(err, "error verifying identity token")
	}
	if ident.Email == "" {
		return "", common.ErrorNoEmailClaim
	}
	errb := oops.In("google_login").With("email", ident.Email)

	repo := s.repomanager.Users(s.repomanager.DB())

	user, err := repo.FindByEmail(ctx, ident.Email)
	if errors.Is(err, common.ErrorNotFound) {
		user, err = repo.Create(ctx, &models.User{Name: ident.Name, Email: ident.Email})
		if errors.Is(err, common.ErrorAlreadyExists) {
			user, err = repo.FindByEmail(ctx, ident.Email)
		}
	}
	if err != nil {
		return "", errb.Wrapf(err, "error resolving user")
	}

	return s.issueToken(user.ID, ident.Email)
}

// Authenticate verifies a bearer token and resolves its email claim to the
// current user. A valid token for a user that no longer exists yields a nil
// user and no error. Token failures wrap common.ErrInvalidToken or
// common.ErrTokenExpired.
func (s *UserService) Authenticate(ctx context.Context, rawToken string) (user *models.User, err error) {
	ctx, span := tracer.Start(ctx, "UserService.Authenticate")
	defer func() { endSpan(span, err) }()

	claims, err := auth.ParseToken(rawToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err = s.repomanager.Users(s.repomanager.DB()).FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, oops.In("users").With("user_id", claims.UserID).Wrapf(err, "error resolving token user")
	}
	return user, nil
}

// Ping reports whether the credential store is reachable.
func (s *UserService) Ping(ctx context.Context) error {
	return s.repomanager.Ping(ctx)
}

func (s *UserService) issueToken(userID, email string) (string, error) {
	token, err := auth.GenerateToken(userID, email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", oops.In("tokens").Wrapf(err, "error signing token")
	}
	return token, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
