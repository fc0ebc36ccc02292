package entity

import "github.com/golang-jwt/jwt/v5"

// Claims are the authenticated caller's token claims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
