package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockJWTService is a mock implementation of the JWTService interface for testing.
type MockJWTService struct {
	GenerateTokenFunc func(ctx context.Context, subject string) (*Token, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)

	// Fixed fields for simple cases
	Token           string
	TokenError      error
	ValidationError error
	Claims          *Claims
}

// NewMockJWTService creates a mock that issues "mock-jwt-token" and accepts
// any token as a valid admin token.
func NewMockJWTService() *MockJWTService {
	now := time.Now()
	return &MockJWTService{
		Token: "mock-jwt-token",
		Claims: &Claims{
			TokenType: TokenTypeAdmin,
			Subject:   "admin",
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
			ID:        uuid.New().String(),
		},
	}
}

// GenerateToken implements JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, subject string) (*Token, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, subject)
	}
	if m.TokenError != nil {
		return nil, m.TokenError
	}
	return &Token{Value: m.Token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// ValidateToken implements JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Claims, nil
}
