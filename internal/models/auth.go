package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims mirrors the token the gateway issues at login. This service
// only decodes tokens; it never mints them.
type JWTClaims struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// User converts the decoded claims into the session user.
func (c *JWTClaims) User() User {
	if c == nil {
		return User{}
	}
	return User{ID: c.UserID, Name: c.Name, Email: c.Email, Role: c.Role}
}
