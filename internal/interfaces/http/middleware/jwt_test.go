package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/infrastructure/auth"
	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/crmdesk/backend/internal/infrastructure/logger"
	"github.com/crmdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBlacklist struct {
	mock.Mock
}

func (m *mockBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

func (m *mockBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	return m.Called(ctx, userID, ttl).Error(0)
}

func (m *mockBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, issuedAt)
	return args.Bool(0), args.Error(1)
}

func newJWT(ttl time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  ttl,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "crmdesk-test",
		MaxRefreshCount:        3,
	})
}

func authRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), JWTAuth(cfg))
	handler := func(c *gin.Context) {
		id, err := GetUserID(c)
		if err != nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id":    id.String(),
			"ctx_user":   logger.GetUserID(c.Request.Context()),
			"has_claims": GetJWTClaims(c) != nil,
		})
	}
	r.GET("/health", handler)
	r.GET("/me", handler)
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	jwtSvc := newJWT(time.Hour)
	userID := uuid.New()
	pair, err := jwtSvc.GenerateTokenPair(auth.GenerateTokenInput{UserID: userID, Email: "a@b.co", Role: "owner"})
	require.NoError(t, err)

	r := authRouter(JWTMiddlewareConfig{Validator: jwtSvc, SkipPaths: []string{"/health"}})

	t.Run("valid token", func(t *testing.T) {
		w := get(r, "/me", BearerPrefix+pair.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"`+userID.String()+`"`)
		assert.Contains(t, w.Body.String(), `"ctx_user":"`+userID.String()+`"`)
		assert.Contains(t, w.Body.String(), `"has_claims":true`)
	})

	t.Run("skip path", func(t *testing.T) {
		w := get(r, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic abc", dto.ErrCodeUnauthorized},
		{"empty bearer", BearerPrefix, dto.ErrCodeUnauthorized},
		{"garbage token", BearerPrefix + "not.a.token", dto.ErrCodeTokenInvalid},
		{"refresh token", BearerPrefix + pair.RefreshToken, dto.ErrCodeTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/me", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}

	t.Run("expired token", func(t *testing.T) {
		expired, err := newJWT(-time.Minute).GenerateTokenPair(auth.GenerateTokenInput{UserID: userID})
		require.NoError(t, err)
		w := get(r, "/me", BearerPrefix+expired.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenExpired, decode(t, w).Error.Code)
	})
}

func TestJWTAuth_Blacklist(t *testing.T) {
	jwtSvc := newJWT(time.Hour)
	userID := uuid.New()
	pair, err := jwtSvc.GenerateTokenPair(auth.GenerateTokenInput{UserID: userID})
	require.NoError(t, err)
	token := BearerPrefix + pair.AccessToken

	t.Run("revoked jti", func(t *testing.T) {
		bl := new(mockBlacklist)
		bl.On("IsBlacklisted", mock.Anything, mock.Anything).Return(true, nil)
		r := authRouter(JWTMiddlewareConfig{Validator: jwtSvc, TokenBlacklist: bl})

		w := get(r, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, decode(t, w).Error.Code)
		bl.AssertNotCalled(t, "IsUserTokenInvalidated", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("user sessions invalidated", func(t *testing.T) {
		bl := new(mockBlacklist)
		bl.On("IsBlacklisted", mock.Anything, mock.Anything).Return(false, nil)
		bl.On("IsUserTokenInvalidated", mock.Anything, userID.String(), mock.AnythingOfType("time.Time")).Return(true, nil)
		r := authRouter(JWTMiddlewareConfig{Validator: jwtSvc, TokenBlacklist: bl})

		w := get(r, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, decode(t, w).Error.Code)
	})

	t.Run("blacklist failure fails open", func(t *testing.T) {
		bl := new(mockBlacklist)
		bl.On("IsBlacklisted", mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
		bl.On("IsUserTokenInvalidated", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
		r := authRouter(JWTMiddlewareConfig{Validator: jwtSvc, TokenBlacklist: bl})

		w := get(r, "/me", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("in-memory logout", func(t *testing.T) {
		bl := auth.NewInMemoryTokenBlacklist()
		claims, err := jwtSvc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.NoError(t, bl.AddToBlacklist(context.Background(), claims.ID, time.Hour))
		r := authRouter(JWTMiddlewareConfig{Validator: jwtSvc, TokenBlacklist: bl})

		w := get(r, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := GetUserID(c)
	assert.ErrorIs(t, err, ErrNoUser)
	assert.Nil(t, GetJWTClaims(c))
}
