package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stocky-backend/internal/domain/shoppinglist"
	"stocky-backend/internal/domain/user"
	"stocky-backend/internal/infrastructure/database/sqlite/models"
	appErrors "stocky-backend/pkg/errors"
)

type ShoppingListRepository struct {
	db *DB
}

func NewShoppingListRepository(db *DB) shoppinglist.Repository {
	return &ShoppingListRepository{db: db}
}

// accessibleWhere narrows a shopping_lists query to rows the viewer may see.
func accessibleWhere(tx *gorm.DB, viewer *user.User) *gorm.DB {
	return tx.Where("is_public = ? OR creator_id = ?", true, viewer.ID)
}

func (r *ShoppingListRepository) ListAccessible(ctx context.Context, viewer *user.User, includeDeleted bool, offset, limit int) ([]*shoppinglist.List, int64, error) {
	query := accessibleWhere(r.db.DB.WithContext(ctx).Model(&models.ShoppingListModel{}), viewer)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shopping lists: %w", err)
	}

	var dbModels []*models.ShoppingListModel
	err := query.
		Preload("Creator").
		Preload("Items", "is_deleted = ?", false).
		Preload("Items.Item").
		Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	lists := make([]*shoppinglist.List, 0, len(dbModels))
	for _, m := range dbModels {
		lists = append(lists, toListEntity(m))
	}

	return lists, total, nil
}

func (r *ShoppingListRepository) GetIfAccessible(ctx context.Context, listID uuid.UUID, viewer *user.User) (*shoppinglist.List, error) {
	var dbModel models.ShoppingListModel
	err := accessibleWhere(r.db.DB.WithContext(ctx), viewer).
		Where("id = ? AND is_deleted = ?", listID, false).
		Preload("Creator").
		Preload("Items", "is_deleted = ?", false).
		Preload("Items.Item").
		First(&dbModel).Error

	// An existing but private list is indistinguishable from a missing one.
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	return toListEntity(&dbModel), nil
}

func (r *ShoppingListRepository) Create(ctx context.Context, list *shoppinglist.List, entry *shoppinglist.LogEntry) error {
	list.ID = uuid.New()
	list.CreatedAt = time.Now()
	list.UpdatedAt = time.Now()
	entry.ListID = list.ID

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toListModel(list)).Error; err != nil {
			return err
		}
		return appendLog(tx, entry)
	})
	if err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}

	return nil
}

func (r *ShoppingListRepository) Update(ctx context.Context, list *shoppinglist.List, entry *shoppinglist.LogEntry) error {
	list.UpdatedAt = time.Now()

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ShoppingListModel{}).
			Where("id = ? AND is_deleted = ?", list.ID, false).
			Updates(map[string]interface{}{
				"name":       list.Name,
				"is_public":  list.IsPublic,
				"updated_at": list.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrListNotFound
		}
		if entry == nil {
			return nil
		}
		return appendLog(tx, entry)
	})
	if errors.Is(err, appErrors.ErrListNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to update shopping list: %w", err)
	}

	return nil
}

func (r *ShoppingListRepository) SoftDelete(ctx context.Context, list *shoppinglist.List, entry *shoppinglist.LogEntry) error {
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ShoppingListModel{}).
			Where("id = ? AND is_deleted = ?", list.ID, false).
			Updates(map[string]interface{}{
				"is_deleted": true,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrListNotFound
		}
		return appendLog(tx, entry)
	})
	if errors.Is(err, appErrors.ErrListNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}

	return nil
}

func (r *ShoppingListRepository) CreateWithItems(ctx context.Context, list *shoppinglist.List, items []*shoppinglist.ListItem, entry *shoppinglist.LogEntry) error {
	list.ID = uuid.New()
	list.CreatedAt = time.Now()
	list.UpdatedAt = time.Now()
	entry.ListID = list.ID

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toListModel(list)).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.ID = uuid.New()
			item.ListID = list.ID
			item.CreatedAt = time.Now()
			item.UpdatedAt = time.Now()
			if err := tx.Create(toListItemModel(item)).Error; err != nil {
				return err
			}
		}
		return appendLog(tx, entry)
	})
	if err != nil {
		return fmt.Errorf("failed to duplicate shopping list: %w", err)
	}

	return nil
}

func (r *ShoppingListRepository) GetListItem(ctx context.Context, listID, itemID uuid.UUID) (*shoppinglist.ListItem, error) {
	var dbModel models.ShoppingListItemModel
	err := r.db.DB.WithContext(ctx).
		Where("list_id = ? AND item_id = ? AND is_deleted = ?", listID, itemID, false).
		Preload("Item").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrListItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list item: %w", err)
	}

	return toListItemEntity(&dbModel), nil
}

func (r *ShoppingListRepository) FindListItemAnyState(ctx context.Context, listID, itemID uuid.UUID) (*shoppinglist.ListItem, error) {
	var dbModel models.ShoppingListItemModel
	err := r.db.DB.WithContext(ctx).
		Where("list_id = ? AND item_id = ?", listID, itemID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrListItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find list item: %w", err)
	}

	return toListItemEntity(&dbModel), nil
}

func (r *ShoppingListRepository) CreateItem(ctx context.Context, item *shoppinglist.ListItem, entry *shoppinglist.LogEntry) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toListItemModel(item)).Error; err != nil {
			return err
		}
		return appendLog(tx, entry)
	})
	if err != nil {
		return fmt.Errorf("failed to add list item: %w", err)
	}

	return nil
}

func (r *ShoppingListRepository) UpdateItem(ctx context.Context, item *shoppinglist.ListItem, entry *shoppinglist.LogEntry) error {
	item.UpdatedAt = time.Now()

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ShoppingListItemModel{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"quantity":   item.Quantity,
				"is_deleted": item.IsDeleted,
				"updated_at": item.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrListItemNotFound
		}
		if entry == nil {
			return nil
		}
		return appendLog(tx, entry)
	})
	if errors.Is(err, appErrors.ErrListItemNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to update list item: %w", err)
	}

	return nil
}

func (r *ShoppingListRepository) SoftDeleteItem(ctx context.Context, item *shoppinglist.ListItem, entry *shoppinglist.LogEntry) error {
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ShoppingListItemModel{}).
			Where("id = ? AND is_deleted = ?", item.ID, false).
			Updates(map[string]interface{}{
				"is_deleted": true,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrListItemNotFound
		}
		return appendLog(tx, entry)
	})
	if errors.Is(err, appErrors.ErrListItemNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to remove list item: %w", err)
	}

	return nil
}

func (r *ShoppingListRepository) GetLogs(ctx context.Context, listID uuid.UUID, actionType string, offset, limit int) ([]*shoppinglist.LogEntry, int64, error) {
	query := r.db.DB.WithContext(ctx).
		Model(&models.ShoppingListLogModel{}).
		Where("list_id = ?", listID)
	if actionType != "" {
		query = query.Where("action_type = ?", actionType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count logs: %w", err)
	}

	var dbModels []*models.ShoppingListLogModel
	err := query.
		Preload("User").
		Order("timestamp DESC").
		Offset(offset).Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list logs: %w", err)
	}

	entries := make([]*shoppinglist.LogEntry, 0, len(dbModels))
	for _, m := range dbModels {
		entries = append(entries, toLogEntity(m))
	}

	return entries, total, nil
}

// appendLog writes one audit row inside the caller's transaction so a failed
// log write rolls the mutation back.
func appendLog(tx *gorm.DB, entry *shoppinglist.LogEntry) error {
	entry.ID = uuid.New()
	entry.Timestamp = time.Now()

	details := ""
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to encode log details: %w", err)
		}
		details = string(raw)
	}

	return tx.Create(&models.ShoppingListLogModel{
		ID:         entry.ID,
		ListID:     entry.ListID,
		UserID:     entry.UserID,
		ActionType: string(entry.ActionType),
		Details:    details,
		Timestamp:  entry.Timestamp,
	}).Error
}

func toListModel(l *shoppinglist.List) *models.ShoppingListModel {
	return &models.ShoppingListModel{
		ID:        l.ID,
		Name:      l.Name,
		IsPublic:  l.IsPublic,
		CreatorID: l.CreatorID,
		IsDeleted: l.IsDeleted,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toListEntity(m *models.ShoppingListModel) *shoppinglist.List {
	list := &shoppinglist.List{
		ID:        m.ID,
		Name:      m.Name,
		IsPublic:  m.IsPublic,
		CreatorID: m.CreatorID,
		IsDeleted: m.IsDeleted,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Creator != nil {
		list.Creator = toUserEntity(m.Creator)
	}
	for _, item := range m.Items {
		list.Items = append(list.Items, toListItemEntity(item))
	}
	return list
}

func toListItemModel(i *shoppinglist.ListItem) *models.ShoppingListItemModel {
	return &models.ShoppingListItemModel{
		ID:        i.ID,
		ListID:    i.ListID,
		ItemID:    i.ItemID,
		Quantity:  i.Quantity,
		IsDeleted: i.IsDeleted,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func toListItemEntity(m *models.ShoppingListItemModel) *shoppinglist.ListItem {
	item := &shoppinglist.ListItem{
		ID:        m.ID,
		ListID:    m.ListID,
		ItemID:    m.ItemID,
		Quantity:  m.Quantity,
		IsDeleted: m.IsDeleted,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Item != nil {
		item.Item = toItemEntity(m.Item)
	}
	return item
}

func toLogEntity(m *models.ShoppingListLogModel) *shoppinglist.LogEntry {
	entry := &shoppinglist.LogEntry{
		ID:         m.ID,
		ListID:     m.ListID,
		UserID:     m.UserID,
		ActionType: shoppinglist.ActionType(m.ActionType),
		Timestamp:  m.Timestamp,
	}
	if m.User != nil {
		entry.User = toUserEntity(m.User)
	}
	if m.Details != "" {
		var details map[string]interface{}
		if err := json.Unmarshal([]byte(m.Details), &details); err != nil {
			// Keep unreadable payloads visible instead of dropping them.
			details = map[string]interface{}{"raw": m.Details}
		}
		entry.Details = details
	}
	return entry
}
