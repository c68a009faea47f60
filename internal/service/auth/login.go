package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloggy-api/internal/config"
	"github.com/phrazzld/bloggy-api/internal/platform/logger"
)

// LoginService exchanges admin credentials for a bearer token.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*Token, error)
}

type adminLoginService struct {
	username     string
	passwordHash string
	verifier     PasswordVerifier
	tokens       JWTService
	logger       *slog.Logger
}

var _ LoginService = (*adminLoginService)(nil)

// NewLoginService creates a LoginService for the single configured admin.
func NewLoginService(
	cfg config.AuthConfig,
	verifier PasswordVerifier,
	tokens JWTService,
	logger *slog.Logger,
) (LoginService, error) {
	if verifier == nil {
		return nil, fmt.Errorf("password verifier cannot be nil")
	}
	if tokens == nil {
		return nil, fmt.Errorf("jwt service cannot be nil")
	}
	if cfg.AdminUsername == "" || cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("admin username and password hash are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &adminLoginService{
		username:     cfg.AdminUsername,
		passwordHash: cfg.AdminPasswordHash,
		verifier:     verifier,
		tokens:       tokens,
		logger:       logger.With(slog.String("component", "admin_login")),
	}, nil
}

// Login returns ErrInvalidCredentials for an unknown username or a wrong
// password, without saying which.
func (s *adminLoginService) Login(ctx context.Context, username, password string) (*Token, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	// Compare runs even when the username is wrong.
	passErr := s.verifier.Compare(s.passwordHash, password)
	if !userOK || passErr != nil {
		log.Warn("admin login rejected", slog.Bool("username_match", userOK))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, s.username)
	if err != nil {
		return nil, err
	}

	log.Info("admin logged in", slog.Time("expires_at", token.ExpiresAt))
	return token, nil
}
