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

type SKURepository struct {
	db *DB
}

func NewSKURepository(db *DB) inventory.SKURepository {
	return &SKURepository{db: db}
}

func (r *SKURepository) Create(ctx context.Context, sku *inventory.SKU) error {
	sku.ID = uuid.New()
	sku.IsActive = true
	sku.CreatedAt = time.Now()
	sku.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(toSKUModel(sku)).Error; err != nil {
		return fmt.Errorf("failed to create sku: %w", err)
	}

	return nil
}

func (r *SKURepository) GetByID(ctx context.Context, id uuid.UUID) (*inventory.SKU, error) {
	var dbModel models.SKUModel
	err := r.db.DB.WithContext(ctx).
		Preload("Item").
		Preload("Location").
		Where("id = ?", id).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrSKUNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sku: %w", err)
	}

	return toSKUEntity(&dbModel), nil
}

func (r *SKURepository) GetByItemLocation(ctx context.Context, itemID, locationID uuid.UUID) (*inventory.SKU, error) {
	var dbModel models.SKUModel
	err := r.db.DB.WithContext(ctx).
		Where("item_id = ? AND location_id = ? AND is_active = ?", itemID, locationID, true).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrSKUNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sku by item and location: %w", err)
	}

	return toSKUEntity(&dbModel), nil
}

func (r *SKURepository) ListByItem(ctx context.Context, itemID uuid.UUID, offset, limit int) ([]*inventory.SKU, error) {
	return r.listWhere(ctx, offset, limit, "item_id = ? AND is_active = ?", itemID, true)
}

func (r *SKURepository) ListByLocation(ctx context.Context, locationID uuid.UUID, offset, limit int) ([]*inventory.SKU, error) {
	return r.listWhere(ctx, offset, limit, "location_id = ? AND is_active = ?", locationID, true)
}

func (r *SKURepository) ListLowStock(ctx context.Context, threshold float64, offset, limit int) ([]*inventory.SKU, error) {
	return r.listWhere(ctx, offset, limit, "is_active = ? AND quantity <= ?", true, threshold)
}

func (r *SKURepository) listWhere(ctx context.Context, offset, limit int, query string, args ...interface{}) ([]*inventory.SKU, error) {
	var dbModels []*models.SKUModel
	err := r.db.DB.WithContext(ctx).
		Preload("Item").
		Preload("Location").
		Where(query, args...).
		Offset(offset).
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list skus: %w", err)
	}

	return toSKUEntities(dbModels), nil
}

func (r *SKURepository) List(ctx context.Context, offset, limit int, includeInactive bool) ([]*inventory.SKU, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.SKUModel{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count skus: %w", err)
	}

	var dbModels []*models.SKUModel
	err := query.
		Preload("Item").
		Preload("Location").
		Offset(offset).
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list skus: %w", err)
	}

	return toSKUEntities(dbModels), total, nil
}

func (r *SKURepository) Search(ctx context.Context, q string, offset, limit int) ([]*inventory.SKU, error) {
	pattern := "%" + q + "%"

	var dbModels []*models.SKUModel
	err := r.db.DB.WithContext(ctx).
		Preload("Item").
		Preload("Location").
		Joins("JOIN items ON items.id = skus.item_id").
		Joins("JOIN locations ON locations.id = skus.location_id").
		Where("skus.is_active = ?", true).
		Where("items.name LIKE ? OR items.upc LIKE ? OR locations.name LIKE ?", pattern, pattern, pattern).
		Offset(offset).
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search skus: %w", err)
	}

	return toSKUEntities(dbModels), nil
}

func (r *SKURepository) Update(ctx context.Context, sku *inventory.SKU) error {
	sku.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.SKUModel{}).
		Where("id = ?", sku.ID).
		Updates(map[string]interface{}{
			"quantity":    sku.Quantity,
			"unit":        sku.Unit,
			"expiry_date": sku.ExpiryDate,
			"notes":       sku.Notes,
			"is_active":   sku.IsActive,
			"updated_at":  sku.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update sku: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrSKUNotFound
	}

	return nil
}

func (r *SKURepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity float64) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.SKUModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update sku quantity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrSKUNotFound
	}

	return nil
}

func (r *SKURepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.SKUModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate sku: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrSKUNotFound
	}

	return nil
}

func toSKUModel(s *inventory.SKU) *models.SKUModel {
	return &models.SKUModel{
		ID:         s.ID,
		ItemID:     s.ItemID,
		LocationID: s.LocationID,
		Quantity:   s.Quantity,
		Unit:       s.Unit,
		ExpiryDate: s.ExpiryDate,
		Notes:      s.Notes,
		IsActive:   s.IsActive,
		CreatedBy:  s.CreatedBy,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toSKUEntity(m *models.SKUModel) *inventory.SKU {
	sku := &inventory.SKU{
		ID:         m.ID,
		ItemID:     m.ItemID,
		LocationID: m.LocationID,
		Quantity:   m.Quantity,
		Unit:       m.Unit,
		ExpiryDate: m.ExpiryDate,
		Notes:      m.Notes,
		IsActive:   m.IsActive,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Item != nil {
		sku.Item = toItemEntity(m.Item)
	}
	if m.Location != nil {
		sku.Location = toLocationEntity(m.Location)
	}
	return sku
}

func toSKUEntities(dbModels []*models.SKUModel) []*inventory.SKU {
	skus := make([]*inventory.SKU, 0, len(dbModels))
	for _, m := range dbModels {
		skus = append(skus, toSKUEntity(m))
	}
	return skus
}
