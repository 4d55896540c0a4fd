// file: service/token_service.go

package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"go-auth-api/logger"
	"go-auth-api/model"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validation failures are surfaced as distinct errors so that callers can log
// the real reason, even though both collapse to 401 externally.
var (
	ErrTokenExpired     = errors.New("access token expired")
	ErrSignatureInvalid = errors.New("access token signature invalid")
)

// refreshTokenBytes is the entropy of an opaque refresh token. 32 random
// bytes encode to a 43-character base64url string.
const refreshTokenBytes = 32

// ITokenService defines the contract for minting and validating tokens.
type ITokenService interface {
	GenerateAccessToken(userID int, roles []string) (string, error)
	ValidateAccessToken(tokenString string) (*model.AppClaims, error)
	NewRefreshTokenString() (string, error)
	AccessTokenTTL() time.Duration
}

// TokenService mints and validates access tokens and generates opaque refresh
// token strings. The signing key is set once at construction and never
// changes, so concurrent use needs no synchronization.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// GenerateAccessToken produces a signed JWT embedding the user's id and role
// names, expiring after the configured TTL.
func (s *TokenService) GenerateAccessToken(userID int, roles []string) (string, error) {
	now := time.Now()

	claims := &model.AppClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken verifies the token signature and expiry. The signature
// is checked before any claim is inspected; a tampered token is rejected as
// ErrSignatureInvalid regardless of its claimed expiry, and only a token with
// a valid signature can fail as ErrTokenExpired.
func (s *TokenService) ValidateAccessToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})

	switch {
	case err == nil && token.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		// Malformed tokens and every other parse failure are integrity
		// failures from the caller's point of view.
		return nil, ErrSignatureInvalid
	}
}

// NewRefreshTokenString generates a cryptographically random opaque string.
// Refresh tokens are lookup keys, not signed structures: they must be
// revocable by deleting the stored record, which a self-validating token
// would not allow.
func (s *TokenService) NewRefreshTokenString() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		logger.Log.WithError(err).Error("Failed to generate refresh token randomness")
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// AccessTokenTTL returns the configured access-token lifetime.
func (s *TokenService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}
