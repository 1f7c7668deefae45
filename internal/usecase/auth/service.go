package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stocky-backend/internal/config"
	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/logger"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

// Service implements authentication use cases. Sessions are stateless: a
// signed token is the sole proof of authorization, so logout has nothing to
// revoke server-side.
type Service struct {
	userRepo domainUser.Repository
	jwtCfg   config.JWTConfig
}

func NewService(userRepo domainUser.Repository, jwtCfg config.JWTConfig) *Service {
	return &Service{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

// Login verifies credentials and issues a token pair. A missing user, an
// inactive account and a wrong password all produce the same error so the
// response does not reveal which usernames exist.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil || !user.IsActive {
		return nil, appErrors.ErrInvalidCredentials
	}

	if !utils.CheckPassword(user.HashedPassword, req.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.Bool("remember_me", req.RememberMe),
		zap.String("event", "user_login"),
	)

	return s.issueTokenPair(user, req.RememberMe)
}

// Refresh issues a fresh pair for an already authenticated user. The caller
// proves identity with any valid token; persistent selects the long refresh
// lifetime when a remembered session is being rotated.
func (s *Service) Refresh(ctx context.Context, user *domainUser.User, persistent bool) (*TokenResponse, error) {
	return s.issueTokenPair(user, persistent)
}

// RefreshTokenTTL reports how long refresh tokens live for the given session
// kind, so the transport layer can align cookie expiry with token expiry.
func (s *Service) RefreshTokenTTL(persistent bool) time.Duration {
	if persistent {
		return time.Duration(s.jwtCfg.PersistentSessionExpireDays) * 24 * time.Hour
	}
	return time.Duration(s.jwtCfg.RefreshExpireDays) * 24 * time.Hour
}

// GenerateAPIKey mints a new opaque key and stores it on the user, replacing
// any previous key.
func (s *Service) GenerateAPIKey(ctx context.Context, user *domainUser.User) (*APIKeyResponse, error) {
	key, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, appErrors.NewAppError("KEY_GENERATION_FAILED", "Failed to generate API key", err)
	}

	if err := s.userRepo.SetAPIKey(ctx, user.ID, &key); err != nil {
		return nil, err
	}

	logger.Info("API key generated",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "api_key_generated"),
	)

	return &APIKeyResponse{
		Message: "API key generated successfully",
		APIKey:  key,
		Note:    "Store this API key securely. It will not be shown again.",
	}, nil
}

// RevokeAPIKey clears the user's stored key. Subsequent requests carrying the
// old key fail identity resolution.
func (s *Service) RevokeAPIKey(ctx context.Context, user *domainUser.User) error {
	if err := s.userRepo.SetAPIKey(ctx, user.ID, nil); err != nil {
		return err
	}

	logger.Info("API key revoked",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "api_key_revoked"),
	)

	return nil
}

func (s *Service) issueTokenPair(user *domainUser.User, rememberMe bool) (*TokenResponse, error) {
	accessExpiry := time.Duration(s.jwtCfg.AccessExpireMinutes) * time.Minute
	refreshExpiry := s.RefreshTokenTTL(rememberMe)

	pair, err := utils.GenerateTokenPair(user.ID, user.Username, string(user.Role), s.jwtCfg.Secret, accessExpiry, refreshExpiry)
	if err != nil {
		return nil, appErrors.NewAppError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	return &TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    pair.ExpiresIn,
		UserID:       user.ID,
		Role:         string(user.Role),
	}, nil
}
