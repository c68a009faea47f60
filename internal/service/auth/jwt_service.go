package auth

import (
	"context"
	"time"
)

// TokenTypeAdmin marks tokens that grant access to the admin API.
const TokenTypeAdmin = "admin"

// JWTService defines operations for managing admin bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed admin token for the given subject
	// (the admin username).
	GenerateToken(ctx context.Context, subject string) (*Token, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrInvalidToken or ErrWrongTokenType on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Token is a signed token together with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Claims represents the claims carried by an admin token.
type Claims struct {
	// TokenType is always TokenTypeAdmin for tokens this service accepts.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
