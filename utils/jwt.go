package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// authClaims is the token payload: the registered subject carries the user
// UUID, plus a private role claim for the authorization middleware.
type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens of one fixed lifetime; access
// and refresh tokens are two separate managers.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secretKey string, duration time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secretKey),
		ttl:    duration,
	}
}

func (j *JWTManager) GenerateToken(userUUID string, role string) (string, error) {
	now := time.Now()
	claims := authClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// VerifyToken checks signature, algorithm and expiry, and returns the user
// UUID and role.
func (j *JWTManager) VerifyToken(tokenStr string) (string, string, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (interface{}, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", "", errors.New("invalid token")
	}
	if claims.Subject == "" || claims.Role == "" {
		return "", "", errors.New("token missing subject or role")
	}
	return claims.Subject, claims.Role, nil
}
