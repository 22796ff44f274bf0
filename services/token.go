package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"vikendica/errors"
)

// TokenClaims is the payload of the bearer tokens accepted by the API
type TokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// GenerateToken signs an HS256 token for the user, valid for ttl.
func GenerateToken(secret, username, role string, ttl time.Duration, now time.Time) (string, error) {
	claims := TokenClaims{
		Username: username,
		Role:     role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Subject:   username,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, errors.Unauthorized("Missing token")
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "Invalid token", err)
	}
	if claims.Username == "" || claims.Role == "" {
		return nil, errors.Unauthorized("Token has no user information")
	}
	return claims, nil
}
