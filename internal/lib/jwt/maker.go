// Package jwt generates and parses the signed session tokens that prove
// a prior successful login. Tokens are stateless: validity is decided by
// signature and expiry alone, nothing is kept server-side.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Maker creates and verifies session tokens.
type Maker interface {
	// GenerateToken signs a token carrying the user id, email and level.
	GenerateToken(userID, email, level string) (string, error)
	// ParseToken verifies signature and expiry and returns the claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker with an HS256 secret key and a token TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker builds a MakerImpl from the signing secret and token lifetime.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken signs a token whose expiry is issuance time plus the TTL.
func (j *MakerImpl) GenerateToken(userID, email, level string) (string, error) {
	claims := CustomClaims{
		UserID: userID,
		Email:  email,
		Level:  level,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken checks signature and validity and returns the decoded claims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
