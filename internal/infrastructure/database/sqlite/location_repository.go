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

type LocationRepository struct {
	db *DB
}

func NewLocationRepository(db *DB) inventory.LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, location *inventory.Location) error {
	location.ID = uuid.New()
	location.IsActive = true
	location.CreatedAt = time.Now()
	location.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(toLocationModel(location)).Error; err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*inventory.Location, error) {
	var dbModel models.LocationModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return toLocationEntity(&dbModel), nil
}

func (r *LocationRepository) List(ctx context.Context, offset, limit int, includeInactive bool) ([]*inventory.Location, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.LocationModel{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	var dbModels []*models.LocationModel
	if err := query.Order("name").Offset(offset).Limit(limit).Find(&dbModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list locations: %w", err)
	}

	locations := make([]*inventory.Location, 0, len(dbModels))
	for _, m := range dbModels {
		locations = append(locations, toLocationEntity(m))
	}

	return locations, total, nil
}

func (r *LocationRepository) Update(ctx context.Context, location *inventory.Location) error {
	location.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.LocationModel{}).
		Where("id = ?", location.ID).
		Updates(map[string]interface{}{
			"name":         location.Name,
			"description":  location.Description,
			"storage_type": string(location.StorageType),
			"is_active":    location.IsActive,
			"updated_at":   location.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update location: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrLocationNotFound
	}

	return nil
}

func (r *LocationRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.LocationModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate location: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrLocationNotFound
	}

	return nil
}

func toLocationModel(l *inventory.Location) *models.LocationModel {
	return &models.LocationModel{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		StorageType: string(l.StorageType),
		IsActive:    l.IsActive,
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toLocationEntity(m *models.LocationModel) *inventory.Location {
	return &inventory.Location{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		StorageType: inventory.StorageType(m.StorageType),
		IsActive:    m.IsActive,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
