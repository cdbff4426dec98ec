package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/gin-gonic/gin"
)

const (
	msgRegistryRequired  = "Please enter all required data."
	msgUserExists        = "User Already Exist. Please Login"
	msgLoginRequired     = "Please Enter All Required Data."
	msgUserNotExist      = "User Not Exist. Please Registry"
	msgWrongCredentials  = "Password or Username Is Not Correct"
	msgResetUnknownEmail = "User With Given Email Doesn't Exist"
	msgResetLinkSent     = "password reset link sent to your email account"
)

const (
	opRegistry      = "registry"
	opLogin         = "login"
	opPasswordReset = "passwordreset"
	opGoogleLogin   = "glogin"
	opMiddleware    = "middleware"
)

func (s *HTTPServer) registry(c *gin.Context) {
	ctx := c.Request.Context()

	var req registryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, opRegistry, http.StatusBadRequest, metrics.OutcomeValidationError, msgRegistryRequired)
		return
	}

	err := s.users.Register(ctx, req.Name, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorValidation):
		s.fail(c, opRegistry, http.StatusBadRequest, metrics.OutcomeValidationError, msgRegistryRequired)
		return
	case errors.Is(err, common.ErrorAlreadyExists):
		s.fail(c, opRegistry, http.StatusConflict, metrics.OutcomeConflict, msgUserExists)
		return
	default:
		s.internalError(c, opRegistry, err)
		return
	}

	s.logger.Info(ctx, "Registered", "email", common.NormalizeEmail(req.Email))
	metrics.RecordAuth(opRegistry, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, registryResponse{Success: true})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, opLogin, http.StatusBadRequest, metrics.OutcomeValidationError, msgLoginRequired)
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorValidation):
		s.fail(c, opLogin, http.StatusBadRequest, metrics.OutcomeValidationError, msgLoginRequired)
		return
	case errors.Is(err, common.ErrorNotFound):
		s.fail(c, opLogin, http.StatusNotFound, metrics.OutcomeNotFound, msgUserNotExist)
		return
	case errors.Is(err, common.ErrorInvalidCredentials):
		s.fail(c, opLogin, http.StatusBadRequest, metrics.OutcomeInvalidCredentials, msgWrongCredentials)
		return
	default:
		s.internalError(c, opLogin, err)
		return
	}

	metrics.RecordAuth(opLogin, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) passwordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, opPasswordReset, http.StatusBadRequest, metrics.OutcomeValidationError, msgResetUnknownEmail)
		return
	}

	if _, err := s.users.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.fail(c, opPasswordReset, http.StatusBadRequest, metrics.OutcomeNotFound, msgResetUnknownEmail)
			return
		}
		s.internalError(c, opPasswordReset, err)
		return
	}

	metrics.RecordAuth(opPasswordReset, metrics.OutcomeSuccess)
	c.String(http.StatusOK, msgResetLinkSent)
}

// googleLogin answers every failure, including a bad token, with 500.
func (s *HTTPServer) googleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.internalError(c, opGoogleLogin, err)
		return
	}

	token, err := s.users.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		s.internalError(c, opGoogleLogin, err)
		return
	}

	metrics.RecordAuth(opGoogleLogin, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.String(http.StatusNotFound, msgUserNotExist)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) fail(c *gin.Context, op string, status int, outcome, msg string) {
	metrics.RecordAuth(op, outcome)
	c.String(status, msg)
}

func (s *HTTPServer) internalError(c *gin.Context, op string, err error) {
	s.logger.Error(c.Request.Context(), "request failed", "operation", op, "error", err)
	metrics.RecordAuth(op, metrics.OutcomeError)
	c.String(http.StatusInternalServerError, err.Error())
}
