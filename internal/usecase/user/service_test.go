package user

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

	db, err := sqlite.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewUserRepository(db)
	return NewService(repo), repo
}

func TestCreateUser_DefaultsToMember(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateUser(context.Background(), &CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domainUser.RoleMember), created.Role)
	assert.True(t, created.IsActive)
}

func TestCreateUser_RejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, &CreateUserRequest{
		Username: "alice", Email: "other@example.com", Password: "s3cretpass",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)

	_, err = svc.CreateUser(ctx, &CreateUserRequest{
		Username: "alice2", Email: "alice@example.com", Password: "s3cretpass",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateUser(context.Background(), &CreateUserRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cretpass", Role: "superuser",
	})

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUpdateUser_RoleChangeIsAdminOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)

	member := &domainUser.User{ID: created.ID, Role: domainUser.RoleMember}
	admin := &domainUser.User{ID: created.ID, Role: domainUser.RoleAdmin}

	newRole := string(domainUser.RoleAdmin)
	_, err = svc.UpdateUser(ctx, member, created.ID, &UpdateUserRequest{Role: &newRole})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	updated, err := svc.UpdateUser(ctx, admin, created.ID, &UpdateUserRequest{Role: &newRole})
	require.NoError(t, err)
	assert.Equal(t, string(domainUser.RoleAdmin), updated.Role)
}

func TestUpdateUser_PasswordChangeRehashes(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserRequest{
		Username: "alice", Email: "alice@example.com", Password: "oldpassword",
	})
	require.NoError(t, err)

	actor := &domainUser.User{ID: created.ID, Role: domainUser.RoleMember}
	newPassword := "newpassword"
	_, err = svc.UpdateUser(ctx, actor, created.ID, &UpdateUserRequest{Password: &newPassword})
	require.NoError(t, err)

	loaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(loaded.HashedPassword, "newpassword"))
	assert.False(t, utils.CheckPassword(loaded.HashedPassword, "oldpassword"))
}

func TestDeactivateUser_NeverSelf(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserRequest{
		Username: "admin", Email: "admin@example.com", Password: "s3cretpass", Role: "admin",
	})
	require.NoError(t, err)
	other, err := svc.CreateUser(ctx, &CreateUserRequest{
		Username: "bob", Email: "bob@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)

	actor := &domainUser.User{ID: created.ID, Role: domainUser.RoleAdmin}

	err = svc.DeactivateUser(ctx, actor, created.ID)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SELF_DELETE", appErr.Code)

	require.NoError(t, svc.DeactivateUser(ctx, actor, other.ID))

	loaded, err := svc.GetUser(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsActive)
}
