package jwt

import "github.com/golang-jwt/jwt/v5"

// CustomClaims is the payload embedded in every session token: the
// account id, email and permission level, plus the registered expiry
// and issuance timestamps.
type CustomClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Level  string `json:"level"`
	jwt.RegisteredClaims
}
