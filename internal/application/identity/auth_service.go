package identity

import (
	"context"
	"errors"
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *identity.User) (token string, expiresAt time.Time, err error)
}

// AuthService handles login
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies credentials and issues a token. Unknown usernames and wrong
// passwords return the same error so the response does not leak which part
// failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	invalidCredentials := shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("Failed login attempt", zap.String("username", user.Username))
		return nil, invalidCredentials
	}

	if !user.IsActive {
		return nil, shared.NewDomainError("FORBIDDEN", "Account is disabled")
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}
