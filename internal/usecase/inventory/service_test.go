package inventory

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocky-backend/internal/config"
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

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = ":memory:"
	cfg.Server.Environment = "production"

	db, err := sqlite.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewService(
		sqlite.NewItemRepository(db),
		sqlite.NewLocationRepository(db),
		sqlite.NewSKURepository(db),
		sqlite.NewAlertRepository(db),
	)
}

func testActor() *domainUser.User {
	return &domainUser.User{ID: uuid.New(), Username: "tester", Role: domainUser.RoleMember}
}

func TestCreateItem_DuplicateUPC(t *testing.T) {
	svc := newTestService(t)
	actor := testActor()
	ctx := context.Background()

	upc := "012345678905"
	_, err := svc.CreateItem(ctx, actor, &CreateItemRequest{Name: "Cereal", UPC: &upc})
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, actor, &CreateItemRequest{Name: "Other cereal", UPC: &upc})
	assert.ErrorIs(t, err, appErrors.ErrUPCAlreadyExists)

	// Items without a UPC never collide.
	_, err = svc.CreateItem(ctx, actor, &CreateItemRequest{Name: "Loose apples"})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, actor, &CreateItemRequest{Name: "Loose pears"})
	require.NoError(t, err)
}

func TestCreateSKU_OneActivePerItemLocation(t *testing.T) {
	svc := newTestService(t)
	actor := testActor()
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, actor, &CreateItemRequest{Name: "Milk"})
	require.NoError(t, err)
	fridge, err := svc.CreateLocation(ctx, actor, &CreateLocationRequest{Name: "Fridge", StorageType: "refrigerator"})
	require.NoError(t, err)
	pantry, err := svc.CreateLocation(ctx, actor, &CreateLocationRequest{Name: "Pantry", StorageType: "pantry"})
	require.NoError(t, err)

	sku, err := svc.CreateSKU(ctx, actor, &CreateSKURequest{ItemID: item.ID, LocationID: fridge.ID, Quantity: 2, Unit: "l"})
	require.NoError(t, err)
	require.NotNil(t, sku.Item)
	assert.Equal(t, "Milk", sku.Item.Name)
	require.NotNil(t, sku.Location)
	assert.Equal(t, "Fridge", sku.Location.Name)

	// Same pair again conflicts; a different location is fine.
	_, err = svc.CreateSKU(ctx, actor, &CreateSKURequest{ItemID: item.ID, LocationID: fridge.ID, Quantity: 1})
	assert.ErrorIs(t, err, appErrors.ErrSKUAlreadyExists)

	_, err = svc.CreateSKU(ctx, actor, &CreateSKURequest{ItemID: item.ID, LocationID: pantry.ID, Quantity: 1})
	require.NoError(t, err)

	// Deactivating frees the pair for a new active SKU.
	require.NoError(t, svc.DeactivateSKU(ctx, sku.ID))
	_, err = svc.CreateSKU(ctx, actor, &CreateSKURequest{ItemID: item.ID, LocationID: fridge.ID, Quantity: 3})
	require.NoError(t, err)
}

func TestCreateSKU_UnknownReferences(t *testing.T) {
	svc := newTestService(t)
	actor := testActor()
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, actor, &CreateItemRequest{Name: "Milk"})
	require.NoError(t, err)

	_, err = svc.CreateSKU(ctx, actor, &CreateSKURequest{ItemID: uuid.New(), LocationID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, appErrors.ErrItemNotFound)

	_, err = svc.CreateSKU(ctx, actor, &CreateSKURequest{ItemID: item.ID, LocationID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, appErrors.ErrLocationNotFound)
}

func TestUpdateSKUQuantityAndLowStock(t *testing.T) {
	svc := newTestService(t)
	actor := testActor()
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, actor, &CreateItemRequest{Name: "Eggs"})
	require.NoError(t, err)
	fridge, err := svc.CreateLocation(ctx, actor, &CreateLocationRequest{Name: "Fridge", StorageType: "refrigerator"})
	require.NoError(t, err)

	sku, err := svc.CreateSKU(ctx, actor, &CreateSKURequest{ItemID: item.ID, LocationID: fridge.ID, Quantity: 12})
	require.NoError(t, err)

	low, err := svc.ListLowStockSKUs(ctx, 1, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, low)

	updated, err := svc.UpdateSKUQuantity(ctx, sku.ID, &UpdateQuantityRequest{Quantity: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 0.5, updated.Quantity)

	low, err = svc.ListLowStockSKUs(ctx, 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, sku.ID, low[0].ID)
}

func TestDeactivateItem_HiddenFromDefaultListing(t *testing.T) {
	svc := newTestService(t)
	actor := testActor()
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, actor, &CreateItemRequest{Name: "Discontinued"})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateItem(ctx, item.ID))

	active, err := svc.ListItems(ctx, 1, 20, false)
	require.NoError(t, err)
	assert.Empty(t, active.Items)

	all, err := svc.ListItems(ctx, 1, 20, true)
	require.NoError(t, err)
	require.Len(t, all.Items, 1)
	assert.False(t, all.Items[0].IsActive)
}

func TestAlertLifecycle(t *testing.T) {
	svc := newTestService(t)
	actor := testActor()
	ctx := context.Background()

	created, err := svc.CreateAlert(ctx, actor, &CreateAlertRequest{
		AlertType: "custom",
		Message:   "Check the freezer seal",
	})
	require.NoError(t, err)
	assert.False(t, created.IsAcknowledged)

	active, err := svc.ListActiveAlerts(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, active.Alerts, 1)

	acked, err := svc.AcknowledgeAlert(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, acked.IsAcknowledged)
	require.NotNil(t, acked.AcknowledgedAt)

	active, err = svc.ListActiveAlerts(ctx, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, active.Alerts)

	_, err = svc.AcknowledgeAlert(ctx, uuid.New())
	assert.ErrorIs(t, err, appErrors.ErrAlertNotFound)
}
