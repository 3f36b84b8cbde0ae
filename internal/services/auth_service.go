package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskforce/internal/cache"
	"taskforce/internal/models"
	"taskforce/internal/repository"
	"taskforce/internal/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrUserNotFound       = errors.New("user not found")
)

const revokedTokenKeyPrefix = "revoked:access_token:"

// AuthService handles login, logout and per-request authentication.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RevokedTokenRepository
	tokens    *token.Service
	cache     *cache.Client
}

// NewAuthService creates a new AuthService. cache may be nil; the revocation
// check then always falls through to the database.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.RevokedTokenRepository, tokens *token.Service, cacheClient *cache.Client) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		cache:     cacheClient,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the user with a freshly signed
// session token.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return user, signed, nil
}

// Logout adds the token to the revocation set. The revocation row carries the
// token's own expiry so housekeeping can drop it once it would have lapsed
// anyway.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.tokens.Validate(rawToken)
	if err != nil {
		return ErrTokenInvalid
	}

	expiresAt := claims.ExpiresAt.Time
	if err := s.tokenRepo.Revoke(rawToken, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	// Best-effort cache marker; the table stays the source of truth.
	ttl := time.Until(expiresAt)
	if ttl > 0 {
		_ = s.cache.Set(ctx, revokedTokenKeyPrefix+claims.ID, []byte("1"), ttl)
	}

	return nil
}

// Authenticate resolves a raw token to a user: revocation check first, then
// signature and expiry, then the subject lookup.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*models.User, error) {
	revoked, err := s.isRevoked(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	claims, err := s.tokens.Validate(rawToken)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.FindByUsername(claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return user, nil
}

func (s *AuthService) isRevoked(ctx context.Context, rawToken string) (bool, error) {
	// The cache key is the JTI, readable only from a token that still parses.
	// A token too mangled to parse never got past Validate on issue, so a
	// parse failure here just skips the cache.
	if claims, err := s.tokens.Validate(rawToken); err == nil {
		if marker, _ := s.cache.Get(ctx, revokedTokenKeyPrefix+claims.ID); marker != nil {
			return true, nil
		}
	}

	revoked, err := s.tokenRepo.IsRevoked(rawToken)
	if err != nil {
		return false, err
	}
	return revoked, nil
}
