package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cadastro-social/internal/config"
	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
	"cadastro-social/internal/service/auth"
	"cadastro-social/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func newService() (auth.Service, *mocks.ProfileRepository, *mocks.SessionRepository) {
	profileRepo := new(mocks.ProfileRepository)
	sessionRepo := new(mocks.SessionRepository)
	return auth.NewService(profileRepo, sessionRepo, nil, testConfig()), profileRepo, sessionRepo
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateProfileInput{
		Email:    "maria@example.com",
		Password: "senha-segura-123",
		FullName: "Maria Silva",
	}

	t.Run("new accounts start as citizen", func(t *testing.T) {
		svc, profileRepo, sessionRepo := newService()

		profileRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		profileRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.Role == domain.RoleCitizen && p.IsActive && p.Email == input.Email
		})).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		profile, tokens, err := svc.Register(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleCitizen, profile.Role)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		profileRepo.AssertExpectations(t)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, profileRepo, _ := newService()

		profileRepo.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		_, _, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("senha-segura-123"), bcrypt.MinCost)
	active := &domain.Profile{
		ID: uuid.New(), Email: "maria@example.com", PasswordHash: string(hash),
		Role: domain.RoleCitizen, IsActive: true,
	}

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		svc, profileRepo, sessionRepo := newService()

		profileRepo.On("GetByEmail", ctx, active.Email).Return(active, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		profile, tokens, err := svc.Login(ctx, domain.LoginInput{Email: active.Email, Password: "senha-segura-123"})

		require.NoError(t, err)
		assert.Equal(t, active.ID, profile.ID)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, active.ID, claims.UserID)
		assert.Equal(t, domain.RoleCitizen, claims.Role)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		svc, profileRepo, _ := newService()

		profileRepo.On("GetByEmail", ctx, active.Email).Return(active, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: active.Email, Password: "errada"})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("inactive account rejected", func(t *testing.T) {
		svc, profileRepo, _ := newService()
		disabled := *active
		disabled.IsActive = false

		profileRepo.On("GetByEmail", ctx, active.Email).Return(&disabled, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: active.Email, Password: "senha-segura-123"})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token rejected", func(t *testing.T) {
		svc, _, sessionRepo := newService()

		sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		_, err := svc.RefreshToken(ctx, "stale-token")

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("valid token is rotated", func(t *testing.T) {
		svc, profileRepo, sessionRepo := newService()
		profile := &domain.Profile{ID: uuid.New(), Email: "maria@example.com", Role: domain.RoleCitizen, IsActive: true}
		session := &repository.Session{ID: uuid.New(), UserID: profile.ID, ExpiresAt: time.Now().Add(time.Hour)}

		sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil).Once()
		profileRepo.On("GetByID", ctx, profile.ID).Return(profile, nil).Once()
		sessionRepo.On("Revoke", ctx, session.ID).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "current-token")

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.RefreshToken)
		sessionRepo.AssertExpectations(t)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.ValidateAccessToken("not-a-jwt")
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken("")
	assert.Error(t, err)
}
