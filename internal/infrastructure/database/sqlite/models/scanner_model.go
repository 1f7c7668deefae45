package models

import (
	"time"

	"github.com/google/uuid"
)

type ScannerAssociationModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	ScannerID string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Username  string    `gorm:"type:varchar(50);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ScannerAssociationModel) TableName() string {
	return "scanner_associations"
}
