package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stocky-backend/internal/config"
	domainUser "stocky-backend/internal/domain/user"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

const (
	CurrentUserKey = "currentUser"
	APIKeyHeader   = "X-API-Key"
)

// AuthMiddleware resolves the caller's identity from a bearer access token or
// an API key and stores the loaded user in the context. A token whose
// signature is valid but whose account has since been deactivated is rejected:
// the active flag is re-checked on every request.
func AuthMiddleware(userRepo domainUser.Repository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveIdentity(c, userRepo, cfg)
		if err != nil {
			status := http.StatusUnauthorized
			utils.ErrorResponse(c, status, err.Error())
			c.Abort()
			return
		}
		if user == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves identity when credentials are present but
// lets anonymous requests through. An unknown or inactive API key degrades to
// anonymous instead of failing; a present-but-invalid bearer token is still a
// hard failure.
func OptionalAuthMiddleware(userRepo domainUser.Repository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			user, err := resolveBearer(c, authHeader, userRepo, cfg)
			if err != nil {
				utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
				c.Abort()
				return
			}
			c.Set(CurrentUserKey, user)
			c.Next()
			return
		}

		if apiKey := c.GetHeader(APIKeyHeader); apiKey != "" {
			if user, err := userRepo.GetByAPIKey(c.Request.Context(), apiKey); err == nil && user.IsActive {
				c.Set(CurrentUserKey, user)
			}
		}

		c.Next()
	}
}

func resolveIdentity(c *gin.Context, userRepo domainUser.Repository, cfg *config.Config) (*domainUser.User, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return resolveBearer(c, authHeader, userRepo, cfg)
	}

	if apiKey := c.GetHeader(APIKeyHeader); apiKey != "" {
		user, err := userRepo.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			return nil, appErrors.ErrInvalidToken
		}
		if !user.IsActive {
			return nil, appErrors.ErrAccountInactive
		}
		return user, nil
	}

	return nil, nil
}

func resolveBearer(c *gin.Context, authHeader string, userRepo domainUser.Repository, cfg *config.Config) (*domainUser.User, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, appErrors.ErrInvalidToken
	}

	claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	user, err := userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, appErrors.ErrAccountInactive
	}

	return user, nil
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*domainUser.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domainUser.User)
	return user, ok
}
