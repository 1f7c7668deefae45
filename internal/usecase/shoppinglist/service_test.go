package shoppinglist

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocky-backend/internal/config"
	domainInventory "stocky-backend/internal/domain/inventory"
	domainList "stocky-backend/internal/domain/shoppinglist"
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

type fixture struct {
	db      *sqlite.DB
	svc     *Service
	userSeq int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = ":memory:"
	cfg.Server.Environment = "production"

	db, err := sqlite.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	listRepo := sqlite.NewShoppingListRepository(db)
	itemRepo := sqlite.NewItemRepository(db)

	return &fixture{
		db:  db,
		svc: NewService(listRepo, itemRepo, nil),
	}
}

func (f *fixture) createUser(t *testing.T, role domainUser.Role) *domainUser.User {
	t.Helper()

	f.userSeq++
	u := &domainUser.User{
		Username:       fmt.Sprintf("user%d", f.userSeq),
		Email:          fmt.Sprintf("user%d@example.com", f.userSeq),
		HashedPassword: "irrelevant",
		Role:           role,
		IsActive:       true,
	}
	require.NoError(t, sqlite.NewUserRepository(f.db).Create(context.Background(), u))
	return u
}

func (f *fixture) createCatalogItem(t *testing.T, name string) *domainInventory.Item {
	t.Helper()

	item := &domainInventory.Item{Name: name}
	require.NoError(t, sqlite.NewItemRepository(f.db).Create(context.Background(), item))
	return item
}

func (f *fixture) createList(t *testing.T, actor *domainUser.User, name string, public bool) *ListResponse {
	t.Helper()

	list, err := f.svc.CreateList(context.Background(), actor, &CreateListRequest{Name: name, IsPublic: public})
	require.NoError(t, err)
	return list
}

func (f *fixture) logs(t *testing.T, actor *domainUser.User, listID uuid.UUID, actionType string) []LogResponse {
	t.Helper()

	resp, err := f.svc.GetLogs(context.Background(), actor, listID, actionType, 1, 200)
	require.NoError(t, err)
	return resp.Logs
}

func TestCreateList_WritesCreatedLog(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)

	list := f.createList(t, alice, "Groceries", false)
	assert.Equal(t, "Groceries", list.Name)
	assert.Equal(t, alice.ID, list.CreatorID)
	assert.False(t, list.IsPublic)
	assert.Empty(t, list.Items)

	logs := f.logs(t, alice, list.ID, "")
	require.Len(t, logs, 1)
	assert.Equal(t, string(domainList.ActionCreated), logs[0].ActionType)
	assert.Equal(t, alice.ID, logs[0].UserID)
	assert.Equal(t, alice.Username, logs[0].Username)
	assert.Equal(t, "Groceries", logs[0].Details["list_name"])
	assert.Equal(t, false, logs[0].Details["is_public"])
}

func TestPrivateList_InvisibleToOtherUsers(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	bob := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	private := f.createList(t, alice, "Secret", false)

	_, err := f.svc.GetList(ctx, bob, private.ID)
	assert.ErrorIs(t, err, appErrors.ErrListNotFound)

	newName := "Hijacked"
	_, err = f.svc.UpdateList(ctx, bob, private.ID, &UpdateListRequest{Name: &newName})
	assert.ErrorIs(t, err, appErrors.ErrListNotFound)

	err = f.svc.DeleteList(ctx, bob, private.ID)
	assert.ErrorIs(t, err, appErrors.ErrListNotFound)

	_, err = f.svc.GetLogs(ctx, bob, private.ID, "", 1, 50)
	assert.ErrorIs(t, err, appErrors.ErrListNotFound)

	visible, err := f.svc.ListLists(ctx, bob, false, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, visible.Lists)

	own, err := f.svc.ListLists(ctx, alice, false, 1, 20)
	require.NoError(t, err)
	require.Len(t, own.Lists, 1)
	assert.Equal(t, private.ID, own.Lists[0].ID)
}

func TestPublicList_CollaborativelyEditable(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	bob := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	public := f.createList(t, alice, "Household", true)

	got, err := f.svc.GetList(ctx, bob, public.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.CreatorID)

	newName := "Household v2"
	updated, err := f.svc.UpdateList(ctx, bob, public.ID, &UpdateListRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Household v2", updated.Name)
	// Editing never transfers ownership.
	assert.Equal(t, alice.ID, updated.CreatorID)

	logs := f.logs(t, alice, public.ID, string(domainList.ActionUpdated))
	require.Len(t, logs, 1)
	assert.Equal(t, bob.ID, logs[0].UserID)
}

func TestUpdateList_NoOpWritesNoLog(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	list := f.createList(t, alice, "Groceries", false)

	sameName := "Groceries"
	samePublic := false
	resp, err := f.svc.UpdateList(ctx, alice, list.ID, &UpdateListRequest{Name: &sameName, IsPublic: &samePublic})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", resp.Name)

	logs := f.logs(t, alice, list.ID, "")
	assert.Len(t, logs, 1) // only the create entry
}

func TestUpdateList_LogsFieldDiff(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	list := f.createList(t, alice, "Groceries", false)

	newName := "Weekly Groceries"
	public := true
	_, err := f.svc.UpdateList(ctx, alice, list.ID, &UpdateListRequest{Name: &newName, IsPublic: &public})
	require.NoError(t, err)

	logs := f.logs(t, alice, list.ID, string(domainList.ActionUpdated))
	require.Len(t, logs, 1)

	changes, ok := logs[0].Details["changes"].(map[string]interface{})
	require.True(t, ok)

	nameDiff, ok := changes["name"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Groceries", nameDiff["from"])
	assert.Equal(t, "Weekly Groceries", nameDiff["to"])

	publicDiff, ok := changes["is_public"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, publicDiff["from"])
	assert.Equal(t, true, publicDiff["to"])
}

func TestDeleteList_IsTerminal(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	admin := f.createUser(t, domainUser.RoleAdmin)
	ctx := context.Background()

	list := f.createList(t, alice, "Short lived", true)
	require.NoError(t, f.svc.DeleteList(ctx, alice, list.ID))

	// A deleted list disappears even for its creator; there is no un-delete.
	_, err := f.svc.GetList(ctx, alice, list.ID)
	assert.ErrorIs(t, err, appErrors.ErrListNotFound)

	err = f.svc.DeleteList(ctx, alice, list.ID)
	assert.ErrorIs(t, err, appErrors.ErrListNotFound)

	visible, err := f.svc.ListLists(ctx, alice, false, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, visible.Lists)

	// Admins may inspect deleted lists in the overview.
	all, err := f.svc.ListLists(ctx, admin, true, 1, 20)
	require.NoError(t, err)
	require.Len(t, all.Lists, 1)
	assert.True(t, all.Lists[0].IsDeleted)

	// Non-admins asking for deleted lists are silently ignored.
	filtered, err := f.svc.ListLists(ctx, alice, true, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, filtered.Lists)
}

func TestAddItem_ConflictAndResurrection(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	list := f.createList(t, alice, "Groceries", false)
	milk := f.createCatalogItem(t, "Milk")

	added, err := f.svc.AddItem(ctx, alice, list.ID, &AddItemRequest{ItemID: milk.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, added.Quantity)
	assert.Equal(t, "Milk", added.ItemName)

	_, err = f.svc.AddItem(ctx, alice, list.ID, &AddItemRequest{ItemID: milk.ID, Quantity: 1})
	assert.ErrorIs(t, err, appErrors.ErrListItemAlreadyAdded)

	require.NoError(t, f.svc.RemoveItem(ctx, alice, list.ID, milk.ID))

	got, err := f.svc.GetList(ctx, alice, list.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	// Re-adding resurrects the soft-deleted row instead of inserting a new one.
	readded, err := f.svc.AddItem(ctx, alice, list.ID, &AddItemRequest{ItemID: milk.ID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, added.ID, readded.ID)
	assert.Equal(t, 5, readded.Quantity)

	got, err = f.svc.GetList(ctx, alice, list.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, added.ID, got.Items[0].ID)
}

func TestUpdateItemQuantity_GatedOnChange(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	list := f.createList(t, alice, "Groceries", false)
	eggs := f.createCatalogItem(t, "Eggs")

	_, err := f.svc.AddItem(ctx, alice, list.ID, &AddItemRequest{ItemID: eggs.ID, Quantity: 6})
	require.NoError(t, err)

	// Same quantity: succeeds but logs nothing.
	item, err := f.svc.UpdateItemQuantity(ctx, alice, list.ID, eggs.ID, &UpdateItemQuantityRequest{Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, 6, item.Quantity)
	assert.Empty(t, f.logs(t, alice, list.ID, string(domainList.ActionItemUpdated)))

	item, err = f.svc.UpdateItemQuantity(ctx, alice, list.ID, eggs.ID, &UpdateItemQuantityRequest{Quantity: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, item.Quantity)

	logs := f.logs(t, alice, list.ID, string(domainList.ActionItemUpdated))
	require.Len(t, logs, 1)
	assert.Equal(t, "Eggs", logs[0].Details["item_name"])

	diff, ok := logs[0].Details["quantity"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 6, diff["from"])
	assert.EqualValues(t, 12, diff["to"])
}

func TestUpdateItemQuantity_UnknownItem(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	list := f.createList(t, alice, "Groceries", false)

	_, err := f.svc.UpdateItemQuantity(ctx, alice, list.ID, uuid.New(), &UpdateItemQuantityRequest{Quantity: 1})
	assert.ErrorIs(t, err, appErrors.ErrListItemNotFound)
}

func TestDuplicateList_CopiesActiveItemsAndTransfersOwnership(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	bob := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	source := f.createList(t, alice, "Household", true)
	milk := f.createCatalogItem(t, "Milk")
	bread := f.createCatalogItem(t, "Bread")

	_, err := f.svc.AddItem(ctx, alice, source.ID, &AddItemRequest{ItemID: milk.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, alice, source.ID, &AddItemRequest{ItemID: bread.ID, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, f.svc.RemoveItem(ctx, alice, source.ID, bread.ID))

	dup, err := f.svc.DuplicateList(ctx, bob, source.ID, &DuplicateListRequest{Name: "Bob's copy", IsPublic: false})
	require.NoError(t, err)

	// The duplicate belongs to whoever made it, and skips soft-deleted rows.
	assert.Equal(t, bob.ID, dup.CreatorID)
	assert.False(t, dup.IsPublic)
	require.Len(t, dup.Items, 1)
	assert.Equal(t, milk.ID, dup.Items[0].ItemID)
	assert.Equal(t, 2, dup.Items[0].Quantity)

	// Alice cannot see Bob's private copy.
	_, err = f.svc.GetList(ctx, alice, dup.ID)
	assert.ErrorIs(t, err, appErrors.ErrListNotFound)

	logs := f.logs(t, bob, dup.ID, string(domainList.ActionDuplicated))
	require.Len(t, logs, 1)
	assert.Equal(t, source.ID.String(), logs[0].Details["source_list_id"])
	assert.Equal(t, "Household", logs[0].Details["source_list_name"])
}

func TestGetLogs_NewestFirstWithActionFilter(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	list := f.createList(t, alice, "Groceries", false)
	milk := f.createCatalogItem(t, "Milk")

	time.Sleep(5 * time.Millisecond)
	_, err := f.svc.AddItem(ctx, alice, list.ID, &AddItemRequest{ItemID: milk.ID, Quantity: 1})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = f.svc.UpdateItemQuantity(ctx, alice, list.ID, milk.ID, &UpdateItemQuantityRequest{Quantity: 3})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, f.svc.RemoveItem(ctx, alice, list.ID, milk.ID))

	logs := f.logs(t, alice, list.ID, "")
	require.Len(t, logs, 4)
	assert.Equal(t, string(domainList.ActionItemRemoved), logs[0].ActionType)
	assert.Equal(t, string(domainList.ActionItemUpdated), logs[1].ActionType)
	assert.Equal(t, string(domainList.ActionItemAdded), logs[2].ActionType)
	assert.Equal(t, string(domainList.ActionCreated), logs[3].ActionType)
	for i := 1; i < len(logs); i++ {
		assert.False(t, logs[i].Timestamp.After(logs[i-1].Timestamp))
	}

	added := f.logs(t, alice, list.ID, string(domainList.ActionItemAdded))
	require.Len(t, added, 1)
	assert.EqualValues(t, 1, added[0].Details["quantity"])
}

func TestGetLogs_UnparseableDetailsSurfaceAsRaw(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)

	list := f.createList(t, alice, "Groceries", false)

	// Simulate a corrupted row written by an old release.
	err := f.db.DB.Exec(
		"INSERT INTO shopping_list_logs (id, list_id, user_id, action_type, details, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.New(), list.ID, alice.ID, "updated", "not-json", time.Now().Add(time.Minute),
	).Error
	require.NoError(t, err)

	logs := f.logs(t, alice, list.ID, "updated")
	require.Len(t, logs, 1)
	assert.Equal(t, "not-json", logs[0].Details["raw"])
}

func TestMutationRollsBackWhenLogWriteFails(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)
	ctx := context.Background()

	list := f.createList(t, alice, "Groceries", false)

	// Breaking the log table must make the whole mutation fail atomically.
	require.NoError(t, f.db.DB.Exec("DROP TABLE shopping_list_logs").Error)

	newName := "Renamed"
	_, err := f.svc.UpdateList(ctx, alice, list.ID, &UpdateListRequest{Name: &newName})
	require.Error(t, err)

	got, err := f.svc.GetList(ctx, alice, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Name)
}

func TestAddItem_UnknownCatalogItem(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, domainUser.RoleMember)

	list := f.createList(t, alice, "Groceries", false)

	_, err := f.svc.AddItem(context.Background(), alice, list.ID, &AddItemRequest{ItemID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, appErrors.ErrItemNotFound)
}
