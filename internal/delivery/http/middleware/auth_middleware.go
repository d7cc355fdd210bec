package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware is the access guard for protected routes. It extracts the
// bearer token, verifies it, resolves the account it was issued for, and
// attaches the account to the request context. It has no other side effects.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, accountRepo repository.AccountRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:    tokenSvc,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// Authenticate is the core middleware function that validates the bearer token.
// Every failure mode is a 401; the response does not distinguish a missing
// header from a bad signature or a lapsed token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, "Invalid token format, must be Bearer token")
		}

		accountID, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		// The token may outlive its account. Treat a vanished account the same
		// as a bad token.
		account, err := m.accountRepo.FindByID(c.Request().Context(), accountID)
		if err != nil {
			if !errors.Is(err, repository.ErrAccountNotFound) {
				m.logger.Error("Failed to resolve account for token", slog.Any("accountID", accountID), slog.Any("error", err))
			}

			return response.Unauthorized(c, "Invalid or expired token")
		}

		ctx := deliverycontext.WithAccount(c.Request().Context(), account)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
