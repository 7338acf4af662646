package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/conduitapp/conduit-server/internal/domain"
)

// HMAC-SHA256 signing key requirements.
const (
	keyBytesSize = 32 // 256 bits
)

// TokenService handles JWT access token generation and verification.
type TokenService struct {
	secret        []byte
	tokenDuration time.Duration
}

// NewTokenService creates a new token service with the given signing secret.
func NewTokenService(secret []byte, tokenDuration time.Duration) (*TokenService, error) {
	if len(secret) != keyBytesSize {
		return nil, fmt.Errorf("signing secret must be exactly %d bytes, got %d", keyBytesSize, len(secret))
	}

	return &TokenService{
		secret:        secret,
		tokenDuration: tokenDuration,
	}, nil
}

// GenerateAccessToken creates a signed HS256 access token for the user.
// The token carries the user's ID, email and stored password hash under the
// "user" claim and expires after the configured duration (24h by default).
func (s *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		User: TokenUser{
			ID:           user.ID,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}

// VerifyAccessToken verifies and parses a signed access token.
// Signature mismatch, expiry and malformed input all collapse into a single
// invalid-token error; callers must not treat an invalid token as anonymous.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	var claims AccessClaims

	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(_ *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims.User.ID == "" {
		return nil, fmt.Errorf("invalid token: missing user claim")
	}

	return &claims, nil
}

// TokenDuration returns the configured access token lifetime.
func (s *TokenService) TokenDuration() time.Duration {
	return s.tokenDuration
}
