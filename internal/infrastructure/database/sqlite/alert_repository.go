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

type AlertRepository struct {
	db *DB
}

func NewAlertRepository(db *DB) inventory.AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *inventory.Alert) error {
	alert.ID = uuid.New()
	alert.IsActive = true
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(toAlertModel(alert)).Error; err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*inventory.Alert, error) {
	var dbModel models.AlertModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrAlertNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	return toAlertEntity(&dbModel), nil
}

func (r *AlertRepository) ListActive(ctx context.Context, offset, limit int) ([]*inventory.Alert, int64, error) {
	query := r.db.DB.WithContext(ctx).
		Model(&models.AlertModel{}).
		Where("is_active = ? AND is_acknowledged = ?", true, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	var dbModels []*models.AlertModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&dbModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}

	alerts := make([]*inventory.Alert, 0, len(dbModels))
	for _, m := range dbModels {
		alerts = append(alerts, toAlertEntity(m))
	}

	return alerts, total, nil
}

func (r *AlertRepository) Acknowledge(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.DB.WithContext(ctx).
		Model(&models.AlertModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_acknowledged": true,
			"acknowledged_at": now,
			"updated_at":      now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to acknowledge alert: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrAlertNotFound
	}

	return nil
}

func toAlertModel(a *inventory.Alert) *models.AlertModel {
	return &models.AlertModel{
		ID:             a.ID,
		AlertType:      string(a.AlertType),
		Message:        a.Message,
		ThresholdValue: a.ThresholdValue,
		IsActive:       a.IsActive,
		IsAcknowledged: a.IsAcknowledged,
		AcknowledgedAt: a.AcknowledgedAt,
		SKUID:          a.SKUID,
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toAlertEntity(m *models.AlertModel) *inventory.Alert {
	return &inventory.Alert{
		ID:             m.ID,
		AlertType:      inventory.AlertType(m.AlertType),
		Message:        m.Message,
		ThresholdValue: m.ThresholdValue,
		IsActive:       m.IsActive,
		IsAcknowledged: m.IsAcknowledged,
		AcknowledgedAt: m.AcknowledgedAt,
		SKUID:          m.SKUID,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
