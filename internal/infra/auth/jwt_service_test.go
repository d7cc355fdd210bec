package auth

import (
	"strings"
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: ttl}

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	accountID := uuid.New()

	token, err := jwtService.Issue(accountID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// A freshly issued token verifies back to the same account ID.
	verifiedID, err := jwtService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, accountID, verifiedID)
}

func TestJWTService_RoundTripManyIDs(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		accountID := uuid.New()

		token, err := jwtService.Issue(accountID)
		require.NoError(t, err)

		verifiedID, err := jwtService.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, accountID, verifiedID)
	}
}

func TestJWTService_MalformedToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	_, err = jwtService.Verify("clearly-not-a-jwt-token-format")
	assert.ErrorIs(t, err, service.ErrTokenInvalid)

	_, err = jwtService.Verify("")
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_TamperedToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	token, err := jwtService.Issue(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Mutating any byte of payload or signature must be detected.
	for i := 1; i <= 2; i++ {
		tampered := make([]string, 3)
		copy(tampered, parts)
		tampered[i] = flipFirstChar(tampered[i])

		_, err = jwtService.Verify(strings.Join(tampered, "."))
		assert.ErrorIs(t, err, service.ErrTokenInvalid, "tampering part %d must invalidate the token", i)
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("issuer_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	verifier, err := NewJWTService(newTestConfig("verifier_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// A negative TTL issues tokens that have already lapsed.
	jwtService, err := NewJWTService(newTestConfig("test_secret_key_very_long_for_testing", -time.Minute))
	require.NoError(t, err)

	token, err := jwtService.Issue(uuid.New())
	require.NoError(t, err)

	_, err = jwtService.Verify(token)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("", time.Hour))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_DefaultTTL(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_secret_key_very_long_for_testing"

	// No Auth section configured: the default one-hour TTL applies.
	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	accountID := uuid.New()
	token, err := jwtService.Issue(accountID)
	require.NoError(t, err)

	verifiedID, err := jwtService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, accountID, verifiedID)
}

func flipFirstChar(s string) string {
	if s == "" {
		return s
	}
	if s[0] == 'A' {
		return "B" + s[1:]
	}

	return "A" + s[1:]
}
