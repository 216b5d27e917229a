// Package controllers translates HTTP requests into service calls.
package controllers

import (
	"net/http"

	"github.com/ucqdev/cuahquick/app/resources"
	"github.com/ucqdev/cuahquick/app/services"
	"github.com/ucqdev/cuahquick/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// Register handles POST /api/register.
func (ac *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if _, err := c.ShouldBindJSON(&in); err != nil {
		c.Error(http.StatusBadRequest, "Malformed JSON body")
		return
	}

	user, token, err := ac.service.Register(in)
	if err != nil {
		c.AppError(err)
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Account created.",
		"token":   token,
		"user":    resources.UserResource{}.ToArray(user),
	})
}

// Login handles POST /api/login.
func (ac *AuthController) Login(c *ctx.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if _, err := c.ShouldBindJSON(&in); err != nil {
		c.Error(http.StatusBadRequest, "Malformed JSON body")
		return
	}

	user, token, err := ac.service.Login(in.Email, in.Password)
	if err != nil {
		c.AppError(err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful.",
		"token":   token,
		"user":    resources.UserResource{}.ToArray(user),
	})
}
