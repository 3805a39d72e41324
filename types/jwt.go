package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims carried by access tokens.
// Kind distinguishes back-office users from portal clients.
type Claims struct {
	UserID uint   `json:"user_id"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}
