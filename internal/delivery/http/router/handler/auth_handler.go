// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication-related handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	input := new(usecase.RegisterInput)
	if err := c.Bind(input); err != nil {
		return response.BadRequest(c, "Invalid registration payload")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid registration payload")
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Auth(c, http.StatusCreated, "User registered successfully", output)
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.BadRequest(c, "Invalid login payload")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid login payload")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Auth(c, http.StatusOK, "Login successful", output)
}

// Logout handles the logout request. The acknowledgment is unconditional:
// there is no server-side session, the client discards the token.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "User logged out successfully")
}

// GetUser returns the profile of the account the access guard resolved.
func (h *AuthHandler) GetUser(c echo.Context) error {
	account, ok := deliverycontext.AccountFrom(c.Request().Context())
	if !ok {
		return response.NotFound(c, "User not found")
	}

	return c.JSON(http.StatusOK, response.ProfileBody{
		Name:    account.Name,
		Email:   account.Email,
		Address: account.Address,
		State:   account.State,
	})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
