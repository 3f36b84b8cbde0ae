package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"taskforce/internal/constants"
	"taskforce/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims represents the signed session token payload. Subject carries the
// username; the role is informational only, authorization always re-resolves
// the user from the store.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens.
type Service struct {
	secret []byte
}

// NewService creates a token service with the given signing secret.
func NewService(secret string) *Service {
	return &Service{
		secret: []byte(secret),
	}
}

// Generate issues a signed token for the user, valid for the configured
// session lifetime.
func (s *Service) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.AccessTokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
