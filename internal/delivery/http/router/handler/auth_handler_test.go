package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"passport/config"
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router"
	"passport/internal/delivery/http/router/handler"
	"passport/internal/delivery/http/validator"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/infra/auth"
	"passport/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryAccountRepo backs the handler tests with a map-based store that
// mirrors the unique email constraint of the real one.
type memoryAccountRepo struct {
	byID map[uuid.UUID]*entity.Account
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{byID: make(map[uuid.UUID]*entity.Account)}
}

func (r *memoryAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if account, ok := r.byID[id]; ok {
		return account, nil
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memoryAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, account := range r.byID {
		if account.Email == email {
			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memoryAccountRepo) Create(_ context.Context, account *entity.Account) error {
	for _, existing := range r.byID {
		if existing.Email == account.Email {
			return domainerrors.ErrEmailTaken.WrapMessage("duplicate email")
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.byID[account.ID] = account

	return nil
}

func (r *memoryAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.byID[account.ID] = account

	return nil
}

// passthroughTxManager runs the transactional function directly against the
// in-memory repository.
type passthroughTxManager struct {
	repo repository.AccountRepository
}

func (m passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(passthroughFactory{repo: m.repo})
}

type passthroughFactory struct {
	repo repository.AccountRepository
}

func (f passthroughFactory) AccountRepo() repository.AccountRepository {
	return f.repo
}

// newTestServer wires the real usecase, token service, hasher and guard
// behind the real router, with an in-memory store.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "handler_test_secret_key_very_long"
	cfg.Auth = &config.AuthConfig{
		BcryptCost:     bcrypt.MinCost,
		AccessTokenTTL: time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(cfg)

	repo := newMemoryAccountRepo()
	uc := impl.NewAuthService(passthroughTxManager{repo: repo}, repo, hasher, tokenSvc, logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	router.NewRouter(router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(uc, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokenSvc, repo, logger),
	}).RegisterRoutes(e)

	return e
}

func performJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func performAuthorized(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

const registerBody = `{
	"name": "Paulo",
	"email": "paulo@example.com",
	"password": "hunter2!",
	"confirmPassword": "hunter2!",
	"address": "1 Main St",
	"phone": "555-0100",
	"city": "Springfield",
	"state": "IL"
}`

func TestRegister_Success(t *testing.T) {
	e := newTestServer(t)

	rec := performJSON(e, http.MethodPost, "/register", registerBody)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Message string `json:"message"`
		User    struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "User registered successfully", body.Message)
	assert.Equal(t, "Paulo", body.User.Name)
	assert.Equal(t, "paulo@example.com", body.User.Email)
	assert.NotEmpty(t, body.User.ID)
	assert.NotEmpty(t, body.Token)
	assert.NotContains(t, rec.Body.String(), "hunter2!")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	e := newTestServer(t)

	body := strings.Replace(registerBody, `"confirmPassword": "hunter2!"`, `"confirmPassword": "other"`, 1)
	rec := performJSON(e, http.MethodPost, "/register", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Passwords do not match"}`, rec.Body.String())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newTestServer(t)

	rec := performJSON(e, http.MethodPost, "/register", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = performJSON(e, http.MethodPost, "/register", registerBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"User already exists"}`, rec.Body.String())
}

func TestRegister_InvalidPayload(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"name":"Paulo","password":"x","confirmPassword":"x"}`},
		{name: "malformed email", body: `{"name":"Paulo","email":"not-an-email","password":"x","confirmPassword":"x"}`},
		{name: "missing password", body: `{"name":"Paulo","email":"paulo@example.com"}`},
		{name: "not json", body: `name=Paulo`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performJSON(e, http.MethodPost, "/register", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"message":"Invalid registration payload"}`, rec.Body.String())
		})
	}
}

func TestLogin_Success(t *testing.T) {
	e := newTestServer(t)

	rec := performJSON(e, http.MethodPost, "/register", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = performJSON(e, http.MethodPost, "/login", `{"email":"paulo@example.com","password":"hunter2!"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body.Message)
	assert.NotEmpty(t, body.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	e := newTestServer(t)

	rec := performJSON(e, http.MethodPost, "/register", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: `{"email":"paulo@example.com","password":"wrong"}`},
		{name: "unknown email", body: `{"email":"nobody@example.com","password":"hunter2!"}`},
	}

	// Both failure modes yield the identical response, so the endpoint never
	// reveals whether an email is registered.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performJSON(e, http.MethodPost, "/login", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"message":"Invalid email or password"}`, rec.Body.String())
		})
	}
}

func TestLogout(t *testing.T) {
	e := newTestServer(t)

	rec := performJSON(e, http.MethodPost, "/logout", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User logged out successfully"}`, rec.Body.String())
}

func TestGetUser_FullFlow(t *testing.T) {
	e := newTestServer(t)

	rec := performJSON(e, http.MethodPost, "/register", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.Token)

	rec = performAuthorized(e, http.MethodGet, "/user", registered.Token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"name": "Paulo",
		"email": "paulo@example.com",
		"address": "1 Main St",
		"state": "IL"
	}`, rec.Body.String())
}

func TestGetUser_MissingToken(t *testing.T) {
	e := newTestServer(t)

	rec := performAuthorized(e, http.MethodGet, "/user", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Authorization header is missing"}`, rec.Body.String())
}

func TestGetUser_TamperedToken(t *testing.T) {
	e := newTestServer(t)

	rec := performJSON(e, http.MethodPost, "/register", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	// Flip the first character of the signature segment.
	token := registered.Token
	lastDot := strings.LastIndex(token, ".")
	require.Greater(t, lastDot, 0)
	flipped := byte('A')
	if token[lastDot+1] == 'A' {
		flipped = 'B'
	}
	tampered := token[:lastDot+1] + string(flipped) + token[lastDot+2:]

	rec = performAuthorized(e, http.MethodGet, "/user", tampered)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t)

	rec := performJSON(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
