package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stocky-backend/internal/domain/inventory"
	"stocky-backend/internal/infrastructure/database/sqlite/models"
	appErrors "stocky-backend/pkg/errors"
)

type ItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) inventory.ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	item.ID = uuid.New()
	item.IsActive = true
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(toItemModel(item)).Error; err != nil {
		if isUniqueViolation(err) {
			return appErrors.ErrUPCAlreadyExists
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var dbModel models.ItemModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return toItemEntity(&dbModel), nil
}

func (r *ItemRepository) GetByUPC(ctx context.Context, upc string) (*inventory.Item, error) {
	var dbModel models.ItemModel
	err := r.db.DB.WithContext(ctx).Where("upc = ?", upc).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item by upc: %w", err)
	}

	return toItemEntity(&dbModel), nil
}

func (r *ItemRepository) List(ctx context.Context, offset, limit int, includeInactive bool) ([]*inventory.Item, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.ItemModel{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	var dbModels []*models.ItemModel
	if err := query.Order("name").Offset(offset).Limit(limit).Find(&dbModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}

	return toItemEntities(dbModels), total, nil
}

func (r *ItemRepository) Search(ctx context.Context, q string, offset, limit int) ([]*inventory.Item, error) {
	pattern := "%" + q + "%"

	var dbModels []*models.ItemModel
	err := r.db.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Where("name LIKE ? OR description LIKE ? OR upc LIKE ?", pattern, pattern, pattern).
		Offset(offset).
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	return toItemEntities(dbModels), nil
}

func (r *ItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	item.UpdatedAt = time.Now()

	var storageType *string
	if item.DefaultStorageType != nil {
		s := string(*item.DefaultStorageType)
		storageType = &s
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":                 item.Name,
			"description":          item.Description,
			"upc":                  item.UPC,
			"default_storage_type": storageType,
			"is_active":            item.IsActive,
			"updated_at":           item.UpdatedAt,
		})

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return appErrors.ErrUPCAlreadyExists
		}
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrItemNotFound
	}

	return nil
}

func (r *ItemRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ItemModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrItemNotFound
	}

	return nil
}

func toItemModel(item *inventory.Item) *models.ItemModel {
	var storageType *string
	if item.DefaultStorageType != nil {
		s := string(*item.DefaultStorageType)
		storageType = &s
	}

	return &models.ItemModel{
		ID:                 item.ID,
		Name:               item.Name,
		Description:        item.Description,
		UPC:                item.UPC,
		DefaultStorageType: storageType,
		IsActive:           item.IsActive,
		CreatedBy:          item.CreatedBy,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}

func toItemEntity(m *models.ItemModel) *inventory.Item {
	var storageType *inventory.StorageType
	if m.DefaultStorageType != nil {
		s := inventory.StorageType(*m.DefaultStorageType)
		storageType = &s
	}

	return &inventory.Item{
		ID:                 m.ID,
		Name:               m.Name,
		Description:        m.Description,
		UPC:                m.UPC,
		DefaultStorageType: storageType,
		IsActive:           m.IsActive,
		CreatedBy:          m.CreatedBy,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toItemEntities(dbModels []*models.ItemModel) []*inventory.Item {
	items := make([]*inventory.Item, 0, len(dbModels))
	for _, m := range dbModels {
		items = append(items, toItemEntity(m))
	}
	return items
}
