// Package response defines the wire shapes of the HTTP surface.
package response

import (
	"net/http"

	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
)

// MessageBody is the minimal response body: a human-readable message.
// Every error response uses this shape.
type MessageBody struct {
	Message string `json:"message"`
}

// AuthBody is the response body for successful registration and login.
// The user object carries public identity fields only.
type AuthBody struct {
	Message string                `json:"message"`
	User    usecase.AccountOutput `json:"user"`
	Token   string                `json:"token"`
}

// ProfileBody is the response body for the protected profile endpoint.
type ProfileBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	State   string `json:"state"`
}

// Message writes a message-only response with the given status code.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageBody{Message: message})
}

// Auth writes a successful authentication response.
func Auth(c echo.Context, statusCode int, message string, output *usecase.AuthOutput) error {
	return c.JSON(statusCode, AuthBody{
		Message: message,
		User:    output.Account,
		Token:   output.Token,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c echo.Context, message string) error {
	return Message(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c echo.Context, message string) error {
	return Message(c, http.StatusUnauthorized, message)
}

// NotFound writes a 404 response.
func NotFound(c echo.Context, message string) error {
	return Message(c, http.StatusNotFound, message)
}
