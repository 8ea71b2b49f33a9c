package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studio-server/internal/config"
	"studio-server/internal/models"
	"studio-server/internal/repository/mocks"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		PasswordPepper:  "test-pepper",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("correct horse battery staple", "pepper")
	require.NoError(t, err)

	assert.True(t, checkPasswordHash("correct horse battery staple", hash, "pepper"))
	assert.False(t, checkPasswordHash("wrong password", hash, "pepper"))
	// The same password with a different pepper must not verify.
	assert.False(t, checkPasswordHash("correct horse battery staple", hash, "other-pepper"))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		tokenRepo := mocks.NewMockTokenRepository(t)
		svc := NewAuthService(userRepo, tokenRepo, testAuthConfig(), zap.NewNop())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, models.ErrUserNotFound).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(nil, models.ErrUserNotFound).Once()
		userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "alice" && u.Email == "alice@example.com" &&
				u.PasswordHash != "" && u.PasswordHash != "secret-password"
		})).Return(nil).Once()

		user, err := svc.Register(ctx, "alice", "Alice@Example.com", "secret-password")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		svc := NewAuthService(userRepo, mocks.NewMockTokenRepository(t), testAuthConfig(), zap.NewNop())

		_, err := svc.Register(ctx, "alice", "not-an-email", "secret-password")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		svc := NewAuthService(userRepo, mocks.NewMockTokenRepository(t), testAuthConfig(), zap.NewNop())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").
			Return(&models.User{Username: "alice"}, nil).Once()

		_, err := svc.Register(ctx, "alice", "alice@example.com", "secret-password")
		assert.ErrorIs(t, err, models.ErrUserAlreadyExists)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		svc := NewAuthService(userRepo, mocks.NewMockTokenRepository(t), testAuthConfig(), zap.NewNop())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, models.ErrUserNotFound).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").
			Return(&models.User{Email: "alice@example.com"}, nil).Once()

		_, err := svc.Register(ctx, "alice", "alice@example.com", "secret-password")
		assert.ErrorIs(t, err, models.ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	cfg := testAuthConfig()

	hash, err := hashPassword("secret-password", cfg.PasswordPepper)
	require.NoError(t, err)
	storedUser := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}

	t.Run("by username", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		tokenRepo := mocks.NewMockTokenRepository(t)
		svc := NewAuthService(userRepo, tokenRepo, cfg, zap.NewNop())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser, nil).Once()
		tokenRepo.On("SetToken", mock.Anything, storedUser.ID, mock.AnythingOfType("*models.TokenDetails")).Return(nil).Once()

		user, td, err := svc.Login(ctx, "alice", "secret-password")

		require.NoError(t, err)
		assert.Equal(t, storedUser.ID, user.ID)
		assert.NotEmpty(t, td.AccessToken)
		assert.NotEmpty(t, td.RefreshToken)
		assert.NotEqual(t, td.AccessUUID, td.RefreshUUID)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("by email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		tokenRepo := mocks.NewMockTokenRepository(t)
		svc := NewAuthService(userRepo, tokenRepo, cfg, zap.NewNop())

		userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil).Once()
		tokenRepo.On("SetToken", mock.Anything, storedUser.ID, mock.Anything).Return(nil).Once()

		_, _, err := svc.Login(ctx, "alice@example.com", "secret-password")
		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		svc := NewAuthService(userRepo, mocks.NewMockTokenRepository(t), cfg, zap.NewNop())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser, nil).Once()

		_, _, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unknown user maps to invalid credentials", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		svc := NewAuthService(userRepo, mocks.NewMockTokenRepository(t), cfg, zap.NewNop())

		userRepo.On("GetUserByUsername", mock.Anything, "nobody").Return(nil, models.ErrUserNotFound).Once()

		_, _, err := svc.Login(ctx, "nobody", "whatever")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestVerifyAccessToken(t *testing.T) {
	ctx := context.Background()
	cfg := testAuthConfig()
	userID := uuid.New()

	issueTokens := func(t *testing.T, svc AuthService) *models.TokenDetails {
		t.Helper()
		td, err := svc.(*authServiceImpl).createTokens(userID)
		require.NoError(t, err)
		return td
	}

	t.Run("valid token returns claims", func(t *testing.T) {
		tokenRepo := mocks.NewMockTokenRepository(t)
		svc := NewAuthService(mocks.NewMockUserRepository(t), tokenRepo, cfg, zap.NewNop())
		td := issueTokens(t, svc)

		tokenRepo.On("GetUserIDByAccessUUID", mock.Anything, td.AccessUUID).Return(userID, nil).Once()

		claims, err := svc.VerifyAccessToken(ctx, td.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, td.AccessUUID, claims.ID)
	})

	t.Run("revoked token is invalid", func(t *testing.T) {
		tokenRepo := mocks.NewMockTokenRepository(t)
		svc := NewAuthService(mocks.NewMockUserRepository(t), tokenRepo, cfg, zap.NewNop())
		td := issueTokens(t, svc)

		tokenRepo.On("GetUserIDByAccessUUID", mock.Anything, td.AccessUUID).
			Return(uuid.Nil, models.ErrTokenNotFound).Once()

		_, err := svc.VerifyAccessToken(ctx, td.AccessToken)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("garbage token is malformed", func(t *testing.T) {
		svc := NewAuthService(mocks.NewMockUserRepository(t), mocks.NewMockTokenRepository(t), cfg, zap.NewNop())

		_, err := svc.VerifyAccessToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("token signed with another secret is invalid", func(t *testing.T) {
		otherCfg := testAuthConfig()
		otherCfg.JWTSecret = "different-secret"
		otherSvc := NewAuthService(mocks.NewMockUserRepository(t), mocks.NewMockTokenRepository(t), otherCfg, zap.NewNop())
		td := issueTokens(t, otherSvc)

		svc := NewAuthService(mocks.NewMockUserRepository(t), mocks.NewMockTokenRepository(t), cfg, zap.NewNop())
		_, err := svc.VerifyAccessToken(ctx, td.AccessToken)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	cfg := testAuthConfig()
	userID := uuid.New()

	t.Run("rotates the token pair", func(t *testing.T) {
		tokenRepo := mocks.NewMockTokenRepository(t)
		svc := NewAuthService(mocks.NewMockUserRepository(t), tokenRepo, cfg, zap.NewNop())
		td, err := svc.(*authServiceImpl).createTokens(userID)
		require.NoError(t, err)

		tokenRepo.On("GetUserIDByRefreshUUID", mock.Anything, td.RefreshUUID).Return(userID, nil).Once()
		tokenRepo.On("DeleteTokens", mock.Anything, userID, "", td.RefreshUUID).Return(int64(1), nil).Once()
		tokenRepo.On("SetToken", mock.Anything, userID, mock.AnythingOfType("*models.TokenDetails")).Return(nil).Once()

		newTd, err := svc.Refresh(ctx, td.RefreshToken)

		require.NoError(t, err)
		assert.NotEqual(t, td.RefreshUUID, newTd.RefreshUUID)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("revoked refresh token is rejected", func(t *testing.T) {
		tokenRepo := mocks.NewMockTokenRepository(t)
		svc := NewAuthService(mocks.NewMockUserRepository(t), tokenRepo, cfg, zap.NewNop())
		td, err := svc.(*authServiceImpl).createTokens(userID)
		require.NoError(t, err)

		tokenRepo.On("GetUserIDByRefreshUUID", mock.Anything, td.RefreshUUID).
			Return(uuid.Nil, models.ErrTokenNotFound).Once()

		_, err = svc.Refresh(ctx, td.RefreshToken)
		assert.ErrorIs(t, err, models.ErrTokenNotFound)
	})

	t.Run("user ID mismatch is rejected", func(t *testing.T) {
		tokenRepo := mocks.NewMockTokenRepository(t)
		svc := NewAuthService(mocks.NewMockUserRepository(t), tokenRepo, cfg, zap.NewNop())
		td, err := svc.(*authServiceImpl).createTokens(userID)
		require.NoError(t, err)

		tokenRepo.On("GetUserIDByRefreshUUID", mock.Anything, td.RefreshUUID).Return(uuid.New(), nil).Once()

		_, err = svc.Refresh(ctx, td.RefreshToken)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})
}
