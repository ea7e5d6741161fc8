package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"myka/internal/config"
	"myka/internal/http-api/models"
	"myka/internal/http-api/repository"
	"myka/internal/http-api/service"
	"myka/internal/middleware/auth"
)

// --- MOCK USER REPOSITORY ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// --- MOCK REFRESH TOKEN REPOSITORY ---

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// --- SETUP ---

func newAuthService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository) service.AuthService {
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	return service.NewAuthService(userRepo, tokenRepo, cfg)
}

func hashedUser(username, password string) *models.User {
	hash, _ := auth.HashPassword(password)
	return &models.User{
		ID:       "user-1",
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
	}
}

// --- TESTS ---

func TestAuthRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := newAuthService(userRepo, tokenRepo)

		userRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

		user, err := svc.Register("alice", "hunter22", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")
		assert.NoError(t, auth.VerifyPassword(user.Password, "hunter22"))
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo, new(MockRefreshTokenRepository))

		userRepo.On("FindByUsername", "alice").Return(hashedUser("alice", "x"), nil)

		_, err := svc.Register("alice", "hunter22", "other@example.com")
		assert.ErrorIs(t, err, service.ErrNameInUse)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo, new(MockRefreshTokenRepository))

		userRepo.On("FindByUsername", "bob").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", "alice@example.com").Return(hashedUser("alice", "x"), nil)

		_, err := svc.Register("bob", "hunter22", "alice@example.com")
		assert.ErrorIs(t, err, service.ErrEmailInUse)
	})
}

func TestAuthLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := newAuthService(userRepo, tokenRepo)

		userRepo.On("FindByUsername", "alice").Return(hashedUser("alice", "hunter22"), nil)
		tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

		accessToken, refreshToken, user, err := svc.Login("alice", "hunter22")
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, "alice", user.Username)

		claims, err := svc.ValidateToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo, new(MockRefreshTokenRepository))

		userRepo.On("FindByUsername", "alice").Return(hashedUser("alice", "hunter22"), nil)

		_, _, _, err := svc.Login("alice", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo, new(MockRefreshTokenRepository))

		userRepo.On("FindByUsername", "nobody").Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := svc.Login("nobody", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthValidateToken(t *testing.T) {
	t.Run("Garbage", func(t *testing.T) {
		svc := newAuthService(new(MockUserRepository), new(MockRefreshTokenRepository))
		_, err := svc.ValidateToken("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		userRepo.On("FindByUsername", "alice").Return(hashedUser("alice", "hunter22"), nil)
		tokenRepo.On("Create", mock.Anything).Return(nil)

		issuer := newAuthService(userRepo, tokenRepo)
		accessToken, _, _, err := issuer.Login("alice", "hunter22")
		require.NoError(t, err)

		other := service.NewAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), &config.Config{
			JWTSecret:       "a-different-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
		})
		_, err = other.ValidateToken(accessToken)
		assert.Error(t, err)
	})
}

func TestAuthRefreshAccessToken(t *testing.T) {
	t.Run("RotatesBothTokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := newAuthService(userRepo, tokenRepo)

		stored := &models.RefreshToken{
			ID:        "rt-1",
			UserID:    "user-1",
			Token:     "old-token",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		tokenRepo.On("FindByToken", "old-token").Return(stored, nil)
		userRepo.On("FindByID", "user-1").Return(hashedUser("alice", "hunter22"), nil)
		tokenRepo.On("Revoke", "rt-1").Return(nil)
		tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

		accessToken, newRefreshToken, err := svc.RefreshAccessToken("old-token")
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEqual(t, "old-token", newRefreshToken)
		tokenRepo.AssertCalled(t, "Revoke", "rt-1")
	})

	t.Run("RevokedTokenRejected", func(t *testing.T) {
		tokenRepo := new(MockRefreshTokenRepository)
		svc := newAuthService(new(MockUserRepository), tokenRepo)

		tokenRepo.On("FindByToken", "revoked").Return(&models.RefreshToken{
			ID:        "rt-1",
			Token:     "revoked",
			Revoked:   true,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)

		_, _, err := svc.RefreshAccessToken("revoked")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("ExpiredTokenDeleted", func(t *testing.T) {
		tokenRepo := new(MockRefreshTokenRepository)
		svc := newAuthService(new(MockUserRepository), tokenRepo)

		tokenRepo.On("FindByToken", "stale").Return(&models.RefreshToken{
			ID:        "rt-1",
			Token:     "stale",
			ExpiresAt: time.Now().Add(-time.Hour),
		}, nil)
		tokenRepo.On("Delete", "rt-1").Return(nil)

		_, _, err := svc.RefreshAccessToken("stale")
		assert.ErrorIs(t, err, service.ErrExpiredToken)
		tokenRepo.AssertCalled(t, "Delete", "rt-1")
	})
}

func TestAuthRevokeToken(t *testing.T) {
	t.Run("UnknownTokenIgnored", func(t *testing.T) {
		tokenRepo := new(MockRefreshTokenRepository)
		svc := newAuthService(new(MockUserRepository), tokenRepo)

		tokenRepo.On("FindByToken", "ghost").Return(nil, gorm.ErrRecordNotFound)

		assert.NoError(t, svc.RevokeToken("ghost"))
		tokenRepo.AssertNotCalled(t, "Revoke", mock.Anything)
	})

	t.Run("KnownTokenRevoked", func(t *testing.T) {
		tokenRepo := new(MockRefreshTokenRepository)
		svc := newAuthService(new(MockUserRepository), tokenRepo)

		tokenRepo.On("FindByToken", "live").Return(&models.RefreshToken{ID: "rt-1", Token: "live"}, nil)
		tokenRepo.On("Revoke", "rt-1").Return(nil)

		assert.NoError(t, svc.RevokeToken("live"))
	})
}
