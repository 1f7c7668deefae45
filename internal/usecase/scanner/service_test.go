package scanner

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocky-backend/internal/config"
	domainInventory "stocky-backend/internal/domain/inventory"
	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/infrastructure/database/sqlite"
	"stocky-backend/internal/logger"
	appErrors "stocky-backend/pkg/errors"
)

func TestMain(m *testing.M) {
	if err := logger.Init("production"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestService(t *testing.T) (*Service, *sqlite.DB) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = ":memory:"
	cfg.Server.Environment = "production"

	db, err := sqlite.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := NewService(
		sqlite.NewItemRepository(db),
		sqlite.NewSKURepository(db),
		sqlite.NewScannerRepository(db),
	)
	return svc, db
}

func seedItem(t *testing.T, db *sqlite.DB, name, upc string) *domainInventory.Item {
	t.Helper()

	item := &domainInventory.Item{Name: name, UPC: &upc}
	require.NoError(t, sqlite.NewItemRepository(db).Create(context.Background(), item))
	return item
}

func TestScan_KnownUPC(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, "Cereal", "012345678905")

	actor := &domainUser.User{Username: "alice"}
	resp, err := svc.Scan(context.Background(), actor, &ScanRequest{UPC: "012345678905"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "Cereal")
	require.NotNil(t, resp.Item)
	assert.Equal(t, item.ID, resp.Item.ID)
	assert.Empty(t, resp.SKUs)
}

func TestScan_UnknownUPCIsSoftMiss(t *testing.T) {
	svc, _ := newTestService(t)

	// Anonymous scan of an unknown code: no error, no item.
	resp, err := svc.Scan(context.Background(), nil, &ScanRequest{UPC: "999999999999"})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Unknown UPC")
	assert.Nil(t, resp.Item)
	assert.NotNil(t, resp.SKUs)
}

func TestScan_ValidationRejectsShortUPC(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Scan(context.Background(), nil, &ScanRequest{UPC: "123"})
	assert.Nil(t, resp)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestAssociationLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	actor := &domainUser.User{Username: "alice"}

	// Unknown scanners report as not associated rather than erroring.
	status, err := svc.Status(ctx, "kitchen-1")
	require.NoError(t, err)
	assert.False(t, status.IsAssociated)
	assert.Nil(t, status.AssociatedUser)

	// Binding without a username defaults to the caller.
	association, err := svc.Associate(ctx, actor, &AssociateRequest{ScannerID: "kitchen-1"})
	require.NoError(t, err)
	assert.Equal(t, "kitchen-1", association.ScannerID)
	assert.Equal(t, "alice", association.Username)

	status, err = svc.Status(ctx, "kitchen-1")
	require.NoError(t, err)
	assert.True(t, status.IsAssociated)
	require.NotNil(t, status.AssociatedUser)
	assert.Equal(t, "alice", *status.AssociatedUser)

	// Re-binding overwrites the association in place.
	association, err = svc.Associate(ctx, actor, &AssociateRequest{ScannerID: "kitchen-1", Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", association.Username)

	list, err := svc.ListAssociations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)

	require.NoError(t, svc.Disassociate(ctx, "kitchen-1"))
	assert.ErrorIs(t, svc.Disassociate(ctx, "kitchen-1"), appErrors.ErrScannerNotAssociated)
}
