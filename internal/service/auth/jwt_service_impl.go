package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/bloggy-api/internal/config"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
)

// MinSecretLength is the shortest signing secret NewJWTService accepts.
const MinSecretLength = 32

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed time difference for validation to handle clock drift
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}

	return newHMACJWTService(cfg.JWTSecret, cfg.TokenLifetime(), time.Now), nil
}

func newHMACJWTService(secret string, lifetime time.Duration, now func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      now,
		clockSkew:     2 * time.Minute,
	}
}

// GenerateToken creates a signed admin token.
func (s *hmacJWTService) GenerateToken(ctx context.Context, subject string) (*Token, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()
	expiresAt := now.Add(s.tokenLifetime)

	claims := jwtCustomClaims{
		TokenType: TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign admin token",
			slog.String("error", err.Error()),
			slog.String("signing_method", jwt.SigningMethodHS256.Name))
		return nil, fmt.Errorf("failed to sign admin token with HMAC-SHA256: %w", err)
	}

	return &Token{Value: signedToken, ExpiresAt: expiresAt}, nil
}

// ValidateToken validates an admin token and returns its claims.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid")
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed",
				slog.String("error", err.Error()),
				slog.String("error_type", fmt.Sprintf("%T", err)))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}
	if claims.TokenType != TokenTypeAdmin {
		log.Debug("token validation failed: wrong token type",
			slog.String("expected", TokenTypeAdmin),
			slog.String("actual", claims.TokenType))
		return nil, ErrWrongTokenType
	}

	result := &Claims{
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		ID:        claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	log.Debug("admin token validated",
		slog.String("subject", result.Subject),
		slog.String("token_id", result.ID))
	return result, nil
}
