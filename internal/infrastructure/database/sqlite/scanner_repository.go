package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocky-backend/internal/domain/scanner"
	"stocky-backend/internal/infrastructure/database/sqlite/models"
	appErrors "stocky-backend/pkg/errors"
)

type ScannerRepository struct {
	db *DB
}

func NewScannerRepository(db *DB) scanner.AssociationStore {
	return &ScannerRepository{db: db}
}

func (r *ScannerRepository) Get(ctx context.Context, scannerID string) (*scanner.Association, error) {
	var dbModel models.ScannerAssociationModel
	err := r.db.DB.WithContext(ctx).Where("scanner_id = ?", scannerID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrScannerNotAssociated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scanner association: %w", err)
	}

	return toAssociationEntity(&dbModel), nil
}

func (r *ScannerRepository) Set(ctx context.Context, scannerID, username string) error {
	// Re-associating an already bound scanner just moves it to the new user.
	err := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scanner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
		}).
		Create(&models.ScannerAssociationModel{
			ID:        uuid.New(),
			ScannerID: scannerID,
			Username:  username,
			UpdatedAt: time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set scanner association: %w", err)
	}

	return nil
}

func (r *ScannerRepository) Delete(ctx context.Context, scannerID string) error {
	result := r.db.DB.WithContext(ctx).
		Where("scanner_id = ?", scannerID).
		Delete(&models.ScannerAssociationModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete scanner association: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrScannerNotAssociated
	}

	return nil
}

func (r *ScannerRepository) List(ctx context.Context) ([]*scanner.Association, error) {
	var dbModels []*models.ScannerAssociationModel
	err := r.db.DB.WithContext(ctx).Order("updated_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scanner associations: %w", err)
	}

	associations := make([]*scanner.Association, 0, len(dbModels))
	for _, m := range dbModels {
		associations = append(associations, toAssociationEntity(m))
	}

	return associations, nil
}

func toAssociationEntity(m *models.ScannerAssociationModel) *scanner.Association {
	return &scanner.Association{
		ScannerID: m.ScannerID,
		Username:  m.Username,
		UpdatedAt: m.UpdatedAt,
	}
}
