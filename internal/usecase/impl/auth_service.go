// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	txManager repository.TransactionManager,
	accountRepo repository.AccountRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:    txManager,
		accountRepo:  accountRepo,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process: confirmation check,
// duplicate pre-check, hashing, atomic create, token issuance. The steps run
// strictly in this order; in particular the password is never hashed for a
// request that fails the duplicate pre-check.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if input.Password != input.ConfirmPassword {
		return nil, domainerrors.ErrPasswordMismatch.WrapMessage("registration rejected")
	}

	var registered *entity.Account

	// The pre-check and insert share one transaction. The store's unique index
	// on email remains the correctness mechanism for concurrent registrations;
	// the pre-check only saves the hashing cost on the common duplicate case.
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, err := accountRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("registration pre-check")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check existing account")
		}

		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("registration hashing")
		}

		newAccount := &entity.Account{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Address:      input.Address,
			Phone:        input.Phone,
			City:         input.City,
			State:        input.State,
		}

		// A registration racing on the same email loses here with the same
		// EmailTaken error as the pre-check path.
		if err := accountRepo.Create(ctx, newAccount); err != nil {
			return errors.Wrap(err, "failed to create account during registration")
		}

		registered = newAccount

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	token, err := srv.tokenService.Issue(registered.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("accountID", registered.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", registered.ID))

	return &usecase.AuthOutput{
		Account: toAccountOutput(registered),
		Token:   token,
	}, nil
}

// Login authenticates stored credentials and issues a token. An unknown email
// and a wrong password fail with the same InvalidCredentials error so the
// response never reveals whether the email is registered.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected")
		}

		return nil, errors.Wrap(err, "failed to find account for login")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login with wrong password", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected")
	}

	token, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after login", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token after login")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{
		Account: toAccountOutput(account),
		Token:   token,
	}, nil
}

// Logout is a stateless acknowledgment. Tokens stay valid until they lapse;
// true invalidation would need a revocation store, which this service does not keep.
func (srv *authService) Logout(ctx context.Context) error {
	srv.log(ctx).Debug("Logout acknowledged")

	return nil
}

func toAccountOutput(account *entity.Account) usecase.AccountOutput {
	return usecase.AccountOutput{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
	}
}
