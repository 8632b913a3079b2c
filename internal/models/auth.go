package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the identity attached by the session collaborator. The
// reporting engine only checks that a valid token is present; issuing and
// refreshing tokens happens outside this service.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
