package auth

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocky-backend/internal/config"
	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/infrastructure/database/sqlite"
	"stocky-backend/internal/logger"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

func TestMain(m *testing.M) {
	if err := logger.Init("production"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestService(t *testing.T) (*Service, domainUser.Repository) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = ":memory:"
	cfg.Server.Environment = "production"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessExpireMinutes = 30
	cfg.JWT.RefreshExpireDays = 7
	cfg.JWT.PersistentSessionExpireDays = 30

	db, err := sqlite.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	return NewService(userRepo, cfg.JWT), userRepo
}

func seedUser(t *testing.T, repo domainUser.Repository, username, password string, active bool) *domainUser.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	u := &domainUser.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: hash,
		Role:           domainUser.RoleMember,
		IsActive:       active,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo, "alice", "s3cretpass", true)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "alice", Password: "s3cretpass"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, string(domainUser.RoleMember), resp.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, 30*60, resp.ExpiresIn)

	claims, err := utils.ValidateToken(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsRefresh())

	refreshClaims, err := utils.ValidateToken(resp.RefreshToken, "test-secret")
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefresh())
}

// Unknown usernames, wrong passwords and deactivated accounts must be
// indistinguishable to the caller.
func TestLogin_FailuresAreUniform(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "alice", "s3cretpass", true)
	seedUser(t, repo, "mallory", "s3cretpass", false)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "unknown user", username: "nobody", password: "s3cretpass"},
		{name: "wrong password", username: "alice", password: "wrong"},
		{name: "inactive account", username: "mallory", password: "s3cretpass"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), &LoginRequest{Username: tt.username, Password: tt.password})
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
		})
	}
}

func TestLogin_ValidationRejectsShortUsername(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "ab", Password: "x"})
	assert.Nil(t, resp)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestRefreshTokenTTL(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, 7*24*60*60.0, svc.RefreshTokenTTL(false).Seconds())
	assert.Equal(t, 30*24*60*60.0, svc.RefreshTokenTTL(true).Seconds())
}

func TestAPIKeyLifecycle(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo, "alice", "s3cretpass", true)
	ctx := context.Background()

	resp, err := svc.GenerateAPIKey(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, resp.APIKey)

	loaded, err := repo.GetByAPIKey(ctx, resp.APIKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)

	// Regenerating replaces the old key.
	second, err := svc.GenerateAPIKey(ctx, user)
	require.NoError(t, err)
	assert.NotEqual(t, resp.APIKey, second.APIKey)

	_, err = repo.GetByAPIKey(ctx, resp.APIKey)
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)

	require.NoError(t, svc.RevokeAPIKey(ctx, user))
	_, err = repo.GetByAPIKey(ctx, second.APIKey)
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
}
