package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cadastro-social/internal/config"
	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
	"cadastro-social/internal/service/email"
)

type Service interface {
	Register(ctx context.Context, input domain.CreateProfileInput) (*domain.Profile, *domain.TokenPair, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.Profile, *domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(token string) (*Claims, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

type Claims struct {
	UserID uuid.UUID   `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	emailSvc    email.Service
	cfg         *config.Config
}

func NewService(profileRepo repository.ProfileRepository, sessionRepo repository.SessionRepository, emailSvc email.Service, cfg *config.Config) Service {
	return &service{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		emailSvc:    emailSvc,
		cfg:         cfg,
	}
}

// Register creates a citizen account. Elevated roles are only reachable
// through the role-request queue.
func (s *service) Register(ctx context.Context, input domain.CreateProfileInput) (*domain.Profile, *domain.TokenPair, error) {
	exists, err := s.profileRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	profile := &domain.Profile{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
		Role:         domain.RoleCitizen,
		IsActive:     true,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, nil, err
	}

	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendWelcomeEmail(context.Background(), profile.Email, profile.FullName); err != nil {
				log.Printf("Failed to send welcome email: %v", err)
			}
		}()
	}

	tokens, err := s.generateTokenPair(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	return profile, tokens, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.Profile, *domain.TokenPair, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil || !profile.IsActive {
		return nil, nil, fmt.Errorf("invalid email or password: %w", domain.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, fmt.Errorf("invalid email or password: %w", domain.ErrForbidden)
	}

	tokens, err := s.generateTokenPair(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	return profile, tokens, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("invalid or expired refresh token: %w", domain.ErrForbidden)
	}

	profile, err := s.profileRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.IsActive {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}

	// Rotate: the presented token is revoked and a new pair issued.
	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, profile)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, session.ID)
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", domain.ErrForbidden)
	}

	return claims, nil
}

func (s *service) GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *service) generateTokenPair(ctx context.Context, profile *domain.Profile) (*domain.TokenPair, error) {
	now := time.Now()
	claims := Claims{
		UserID: profile.ID,
		Email:  profile.Email,
		Role:   profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   profile.ID.String(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return nil, err
	}
	refreshToken := hex.EncodeToString(refreshBytes)

	session := &repository.Session{
		ID:        uuid.New(),
		UserID:    profile.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: now.Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
