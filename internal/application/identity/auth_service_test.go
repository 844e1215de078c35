package identity

import (
	"context"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/domain/identity"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/auth"
	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/crmdesk/backend/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService() (*AuthService, *mocks.UserRepository, *auth.InMemoryTokenBlacklist) {
	repo := new(mocks.UserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test",
		MaxRefreshCount:        5,
	})
	return NewAuthService(repo, jwtService, blacklist, zap.NewNop()), repo, blacklist
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("owner@example.com", "secret1", "Asha Rao")
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and returns tokens", func(t *testing.T) {
		svc, repo, _ := newTestAuthService()
		repo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{Email: "new@example.com", Password: "secret1", FullName: "New User"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "new@example.com", result.User.Email)
		assert.Equal(t, "sales_rep", result.User.Role)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo, _ := newTestAuthService()
		repo.On("ExistsByEmail", ctx, "dup@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("short password", func(t *testing.T) {
		svc, repo, _ := newTestAuthService()
		repo.On("ExistsByEmail", ctx, "short@example.com").Return(false, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "short@example.com", Password: "12345"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc, repo, _ := newTestAuthService()
		user := newTestUser(t)
		repo.On("FindByEmail", ctx, "owner@example.com").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: "owner@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _ := newTestAuthService()
		repo.On("FindByEmail", ctx, "owner@example.com").Return(newTestUser(t), nil)

		_, err := svc.Login(ctx, LoginInput{Email: "owner@example.com", Password: "wrong!"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _ := newTestAuthService()
		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.NotFound("User"))

		_, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestAuthService()
	user := newTestUser(t)
	repo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	login, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	t.Run("used refresh token is revoked", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
	})

	t.Run("logout revokes refresh token", func(t *testing.T) {
		claims, err := svc.jwtService.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)

		err = svc.Logout(ctx, LogoutInput{
			UserID:       user.ID,
			TokenJTI:     claims.ID,
			TokenTTL:     claims.GetRemainingTTL(),
			RefreshToken: refreshed.RefreshToken,
		})
		require.NoError(t, err)

		revoked, err := svc.blacklist.IsBlacklisted(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: refreshed.RefreshToken})
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "garbage"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatch", func(t *testing.T) {
		svc, repo, _ := newTestAuthService()
		user := newTestUser(t)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordInput{NewPassword: "newpass1", ConfirmPassword: "newpass2"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PASSWORD_MISMATCH", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalidates earlier tokens", func(t *testing.T) {
		svc, repo, blacklist := newTestAuthService()
		user := newTestUser(t)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordInput{NewPassword: "newpass1", ConfirmPassword: "newpass1"})
		require.NoError(t, err)
		assert.True(t, user.CheckPassword("newpass1"))

		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), time.Now().Add(-time.Minute))
		require.NoError(t, err)
		assert.True(t, invalidated)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestAuthService()
	user := newTestUser(t)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	phone := " 98450 12345 "
	info, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "98450 12345", info.Phone)
	assert.Equal(t, "Asha Rao", info.FullName)
}
