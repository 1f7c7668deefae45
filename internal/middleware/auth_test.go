package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocky-backend/internal/config"
	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/infrastructure/database/sqlite"
	"stocky-backend/internal/logger"
	"stocky-backend/pkg/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("production"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type authFixture struct {
	cfg      *config.Config
	userRepo domainUser.Repository
	userSeq  int
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = ":memory:"
	cfg.Server.Environment = "production"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessExpireMinutes = 30
	cfg.JWT.RefreshExpireDays = 7

	db, err := sqlite.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &authFixture{cfg: cfg, userRepo: sqlite.NewUserRepository(db)}
}

func (f *authFixture) createUser(t *testing.T, role domainUser.Role, active bool) *domainUser.User {
	t.Helper()

	f.userSeq++
	u := &domainUser.User{
		Username:       fmt.Sprintf("user%d", f.userSeq),
		Email:          fmt.Sprintf("user%d@example.com", f.userSeq),
		HashedPassword: "irrelevant",
		Role:           role,
		IsActive:       active,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), u))
	return u
}

func (f *authFixture) accessToken(t *testing.T, u *domainUser.User) string {
	t.Helper()

	pair, err := utils.GenerateTokenPair(u.ID, u.Username, string(u.Role), f.cfg.JWT.Secret, 30*time.Minute, time.Hour)
	require.NoError(t, err)
	return pair.AccessToken
}

func (f *authFixture) router(required domainUser.Role) *gin.Engine {
	router := gin.New()
	group := router.Group("", AuthMiddleware(f.userRepo, f.cfg))
	if required != "" {
		group.Use(RequireRole(required))
	}
	group.GET("/probe", func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router
}

func (f *authFixture) probe(router *gin.Engine, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_NoCredentials(t *testing.T) {
	f := newAuthFixture(t)
	w := f.probe(f.router(""), "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidBearerToken(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, domainUser.RoleMember, true)

	w := f.probe(f.router(""), "Authorization", "Bearer "+f.accessToken(t, user))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.Username)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	f := newAuthFixture(t)

	w := f.probe(f.router(""), "Authorization", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.probe(f.router(""), "Authorization", "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_DeactivatedUserIsRejected(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, domainUser.RoleMember, true)
	token := f.accessToken(t, user)

	router := f.router("")
	w := f.probe(router, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	// Deactivation takes effect immediately, outliving any issued token.
	require.NoError(t, f.userRepo.Deactivate(context.Background(), user.ID))

	w = f.probe(router, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "inactive")
}

func TestAuthMiddleware_APIKey(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, domainUser.RoleScanner, true)

	key, err := utils.GenerateAPIKey()
	require.NoError(t, err)
	require.NoError(t, f.userRepo.SetAPIKey(context.Background(), user.ID, &key))

	router := f.router("")
	w := f.probe(router, APIKeyHeader, key)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.Username)

	w = f.probe(router, APIKeyHeader, "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_ForbiddenIsNotUnauthorized(t *testing.T) {
	f := newAuthFixture(t)
	member := f.createUser(t, domainUser.RoleMember, true)
	admin := f.createUser(t, domainUser.RoleAdmin, true)

	router := f.router(domainUser.RoleAdmin)

	// Authenticated but underprivileged: 403, not 401.
	w := f.probe(router, "Authorization", "Bearer "+f.accessToken(t, member))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.probe(router, "Authorization", "Bearer "+f.accessToken(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.probe(router, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_Hierarchy(t *testing.T) {
	f := newAuthFixture(t)
	member := f.createUser(t, domainUser.RoleMember, true)
	readOnly := f.createUser(t, domainUser.RoleReadOnly, true)

	router := f.router(domainUser.RoleScanner)

	// A higher role satisfies a lower requirement.
	w := f.probe(router, "Authorization", "Bearer "+f.accessToken(t, member))
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.probe(router, "Authorization", "Bearer "+f.accessToken(t, readOnly))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, domainUser.RoleScanner, true)

	key, err := utils.GenerateAPIKey()
	require.NoError(t, err)
	require.NoError(t, f.userRepo.SetAPIKey(context.Background(), user.ID, &key))

	router := gin.New()
	router.GET("/probe", OptionalAuthMiddleware(f.userRepo, f.cfg), func(c *gin.Context) {
		if u, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"username": u.Username})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": "anonymous"})
	})

	// Anonymous requests pass through.
	w := f.probe(router, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	// A valid API key attaches identity.
	w = f.probe(router, APIKeyHeader, key)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.Username)

	// An unknown API key degrades to anonymous.
	w = f.probe(router, APIKeyHeader, "bogus")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	// A present but invalid bearer token is still a hard failure.
	w = f.probe(router, "Authorization", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.probe(router, "Authorization", "Bearer "+f.accessToken(t, user))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.Username)
}
