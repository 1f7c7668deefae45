package inventory

import (
	"time"

	"github.com/google/uuid"
)

// StorageType classifies where an item is kept.
type StorageType string

const (
	StoragePantry       StorageType = "pantry"
	StorageRefrigerator StorageType = "refrigerator"
	StorageFreezer      StorageType = "freezer"
	StorageCounter      StorageType = "counter"
	StorageOther        StorageType = "other"
)

// AlertType classifies inventory alerts.
type AlertType string

const (
	AlertLowStock      AlertType = "low_stock"
	AlertExpiryWarning AlertType = "expiry_warning"
	AlertCustom        AlertType = "custom"
)

// Item is a catalog entry for a product, optionally identified by UPC.
type Item struct {
	ID                 uuid.UUID
	Name               string
	Description        string
	UPC                *string
	DefaultStorageType *StorageType
	IsActive           bool
	CreatedBy          uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Location is a physical place where inventory lives.
type Location struct {
	ID          uuid.UUID
	Name        string
	Description string
	StorageType StorageType
	IsActive    bool
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SKU tracks the quantity of one item at one location.
type SKU struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	LocationID uuid.UUID
	Quantity   float64
	Unit       string
	ExpiryDate *time.Time
	Notes      string
	IsActive   bool
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Item     *Item
	Location *Location
}

// Alert flags an inventory condition needing attention.
type Alert struct {
	ID             uuid.UUID
	AlertType      AlertType
	Message        string
	ThresholdValue *float64
	IsActive       bool
	IsAcknowledged bool
	AcknowledgedAt *time.Time
	SKUID          *uuid.UUID
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
