package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

const (
	// AccessTokenExpiry is the lifetime of an issued access token.
	AccessTokenExpiry = 24 * time.Hour
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidKeySize = errors.New("symmetric key must be 32 bytes long")
)

// TokenClaims struct represents the data in the token (UserID, Role, Expiry).
type TokenClaims struct {
	UserID int64     `json:"userId"`
	Role   string    `json:"role"`
	Expiry time.Time `json:"expiry"`
}

// TokenMaker issues and validates PASETO v2 local tokens.
type TokenMaker struct {
	key    []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenMaker validates the key length and returns a TokenMaker.
func NewTokenMaker(symmetricKey string) (*TokenMaker, error) {
	if len(symmetricKey) != 32 {
		return nil, ErrInvalidKeySize
	}
	return &TokenMaker{key: []byte(symmetricKey), expiry: AccessTokenExpiry, now: time.Now}, nil
}

// GenerateAccessToken generates an access token for a user.
func (m *TokenMaker) GenerateAccessToken(userID int64, role string) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		Expiry: m.now().Add(m.expiry),
	}
	token, err := paseto.NewV2().Encrypt(m.key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken decrypts the token and checks its expiry.
func (m *TokenMaker) ValidateToken(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, m.key, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}
	if m.now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}
	return &claims, nil
}
