package models

import (
	"time"

	"github.com/google/uuid"
)

type ItemModel struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name               string    `gorm:"type:varchar(200);not null;index"`
	Description        string    `gorm:"type:text"`
	UPC                *string   `gorm:"type:varchar(20);uniqueIndex"`
	DefaultStorageType *string   `gorm:"type:varchar(20)"`
	IsActive           bool      `gorm:"not null;default:true"`
	CreatedBy          uuid.UUID `gorm:"type:varchar(36);not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (ItemModel) TableName() string {
	return "items"
}

type LocationModel struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;index"`
	Description string    `gorm:"type:text"`
	StorageType string    `gorm:"type:varchar(20);not null"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedBy   uuid.UUID `gorm:"type:varchar(36);not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (LocationModel) TableName() string {
	return "locations"
}

type SKUModel struct {
	ID         uuid.UUID  `gorm:"type:varchar(36);primaryKey"`
	ItemID     uuid.UUID  `gorm:"type:varchar(36);not null;index"`
	LocationID uuid.UUID  `gorm:"type:varchar(36);not null;index"`
	Quantity   float64    `gorm:"not null;default:0"`
	Unit       string     `gorm:"type:varchar(20)"`
	ExpiryDate *time.Time `gorm:""`
	Notes      string     `gorm:"type:text"`
	IsActive   bool       `gorm:"not null;default:true"`
	CreatedBy  uuid.UUID  `gorm:"type:varchar(36);not null"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`

	Item     *ItemModel     `gorm:"foreignKey:ItemID"`
	Location *LocationModel `gorm:"foreignKey:LocationID"`
}

func (SKUModel) TableName() string {
	return "skus"
}

type AlertModel struct {
	ID             uuid.UUID  `gorm:"type:varchar(36);primaryKey"`
	AlertType      string     `gorm:"type:varchar(50);not null"`
	Message        string     `gorm:"type:text;not null"`
	ThresholdValue *float64   `gorm:""`
	IsActive       bool       `gorm:"not null;default:true"`
	IsAcknowledged bool       `gorm:"not null;default:false"`
	AcknowledgedAt *time.Time `gorm:""`
	SKUID          *uuid.UUID `gorm:"type:varchar(36);index"`
	CreatedBy      uuid.UUID  `gorm:"type:varchar(36);not null"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (AlertModel) TableName() string {
	return "alerts"
}
