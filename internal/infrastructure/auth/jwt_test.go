package auth

import (
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "crm-test",
		MaxRefreshCount:        2,
	})
}

func ownerInput() GenerateTokenInput {
	return GenerateTokenInput{UserID: uuid.New(), Email: "owner@example.com", Role: "owner"}
}

func TestNewJWTService_RefreshKeyFallsBackToAccessKey(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "only-secret", AccessTokenExpiration: time.Minute, RefreshTokenExpiration: time.Hour})
	assert.Equal(t, svc.access.secret, svc.refresh.secret)

	pair, err := svc.GenerateTokenPair(ownerInput())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	// a shared key must still not let a refresh token act as an access token
	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	fixed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	input := ownerInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, fixed.Add(15*time.Minute), pair.AccessTokenExpiresAt)
	assert.Equal(t, fixed.Add(7*24*time.Hour), pair.RefreshTokenExpiresAt)

	t.Run("access claims carry the profile", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, input.UserID.String(), claims.Subject)
		assert.Equal(t, "owner@example.com", claims.Email)
		assert.Equal(t, "owner", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.True(t, fixed.Equal(claims.GetIssuedAtTime()))

		id, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, input.UserID, id)
	})

	t.Run("refresh claims carry only the subject", func(t *testing.T) {
		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Empty(t, claims.Email)
		assert.Zero(t, claims.RefreshCount)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	})

	t.Run("every token gets its own id", func(t *testing.T) {
		access, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, access.ID, refresh.ID)
	})
}

func TestValidateAccessToken_Rejects(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(ownerInput())
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh token signed with the refresh key", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign key", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "a-completely-different-secret-key", AccessTokenExpiration: time.Minute})
		_, err := other.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.NewString(), TokenType: TokenTypeAccess}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		raw, err := svc.access.sign(&Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
		})
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(raw)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})
}

func TestValidateAccessToken_Clock(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	pair, err := svc.GenerateTokenPair(ownerInput())
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	svc.now = func() time.Time { return issued.Add(-time.Hour) }
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := ownerInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken, "new@example.com", "manager")
	require.NoError(t, err)

	access, err := svc.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", access.Email)
	assert.Equal(t, "manager", access.Role)

	refresh, err := svc.ValidateRefreshToken(refreshed.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refresh.RefreshCount)

	again, err := svc.RefreshTokenPair(refreshed.RefreshToken, input.Email, input.Role)
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(again.RefreshToken, input.Email, input.Role)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)

	_, err = svc.RefreshTokenPair(pair.AccessToken, input.Email, input.Role)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	assert.Zero(t, (&Claims{}).GetRemainingTTL())

	past := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}}
	assert.Zero(t, past.GetRemainingTTL())

	future := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	assert.InDelta(t, time.Hour.Seconds(), future.GetRemainingTTL().Seconds(), 5)
}
