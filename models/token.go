package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the claim set the identity provider embeds in session
// tokens. The subject carries the user id; StoreID and Email scope all queue
// and cache operations.
type SessionClaims struct {
	jwt.RegisteredClaims

	StoreID string `json:"store_id"`
	Email   string `json:"email"`
}
