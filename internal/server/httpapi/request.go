package httpapi

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type registryRequest struct {
	Name     string `json:"name" binding:"notblank"`
	Email    string `json:"email" binding:"notblank"`
	Password string `json:"password" binding:"notblank"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"notblank"`
	Password string `json:"password" binding:"notblank"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type registryResponse struct {
	Success bool `json:"success"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

var registerOnce sync.Once

// registerValidators adds the notblank tag to gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})
}
