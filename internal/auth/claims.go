package auth

import "github.com/golang-jwt/jwt/v5"

// TokenUser is the identity payload embedded under the "user" claim.
//
// PasswordHash is serialized under the legacy "password" claim name. The
// stored hash rides along in the token for wire compatibility with existing
// clients; verification never re-checks it against the current stored hash,
// so a password change does not invalidate tokens issued earlier.
type TokenUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

// AccessClaims represents the claims stored in a signed access token.
type AccessClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}
