package inventory

import (
	"time"

	"github.com/google/uuid"

	domainInventory "stocky-backend/internal/domain/inventory"
)

type CreateItemRequest struct {
	Name               string  `json:"name" validate:"required,min=1,max=200"`
	Description        string  `json:"description" validate:"omitempty,max=1000"`
	UPC                *string `json:"upc" validate:"omitempty,min=8,max=20"`
	DefaultStorageType *string `json:"default_storage_type" validate:"omitempty,storage_type"`
}

type UpdateItemRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description        *string `json:"description" validate:"omitempty,max=1000"`
	UPC                *string `json:"upc" validate:"omitempty,min=8,max=20"`
	DefaultStorageType *string `json:"default_storage_type" validate:"omitempty,storage_type"`
	IsActive           *bool   `json:"is_active"`
}

type ItemResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	UPC                *string   `json:"upc"`
	DefaultStorageType *string   `json:"default_storage_type"`
	IsActive           bool      `json:"is_active"`
	CreatedBy          uuid.UUID `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ItemListResponse struct {
	Items      []ItemResponse `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

type CreateLocationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	StorageType string `json:"storage_type" validate:"required,storage_type"`
}

type UpdateLocationRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	StorageType *string `json:"storage_type" validate:"omitempty,storage_type"`
	IsActive    *bool   `json:"is_active"`
}

type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StorageType string    `json:"storage_type"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LocationListResponse struct {
	Locations  []LocationResponse `json:"locations"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

type CreateSKURequest struct {
	ItemID     uuid.UUID  `json:"item_id" validate:"required"`
	LocationID uuid.UUID  `json:"location_id" validate:"required"`
	Quantity   float64    `json:"quantity" validate:"gte=0"`
	Unit       string     `json:"unit" validate:"omitempty,max=20"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Notes      string     `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateSKURequest struct {
	Quantity   *float64   `json:"quantity" validate:"omitempty,gte=0"`
	Unit       *string    `json:"unit" validate:"omitempty,max=20"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Notes      *string    `json:"notes" validate:"omitempty,max=1000"`
	LocationID *uuid.UUID `json:"location_id"`
	IsActive   *bool      `json:"is_active"`
}

type UpdateQuantityRequest struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

type SKUResponse struct {
	ID         uuid.UUID         `json:"id"`
	ItemID     uuid.UUID         `json:"item_id"`
	LocationID uuid.UUID         `json:"location_id"`
	Quantity   float64           `json:"quantity"`
	Unit       string            `json:"unit"`
	ExpiryDate *time.Time        `json:"expiry_date"`
	Notes      string            `json:"notes"`
	IsActive   bool              `json:"is_active"`
	CreatedBy  uuid.UUID         `json:"created_by"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Item       *ItemResponse     `json:"item,omitempty"`
	Location   *LocationResponse `json:"location,omitempty"`
}

type SKUListResponse struct {
	SKUs       []SKUResponse `json:"skus"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

type CreateAlertRequest struct {
	AlertType      string     `json:"alert_type" validate:"required,oneof=low_stock expiry_warning custom"`
	Message        string     `json:"message" validate:"required,min=1,max=500"`
	ThresholdValue *float64   `json:"threshold_value"`
	SKUID          *uuid.UUID `json:"sku_id"`
}

type AlertResponse struct {
	ID             uuid.UUID  `json:"id"`
	AlertType      string     `json:"alert_type"`
	Message        string     `json:"message"`
	ThresholdValue *float64   `json:"threshold_value"`
	IsActive       bool       `json:"is_active"`
	IsAcknowledged bool       `json:"is_acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	SKUID          *uuid.UUID `json:"sku_id"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type AlertListResponse struct {
	Alerts     []AlertResponse `json:"alerts"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

func ToItemResponse(i *domainInventory.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	var storageType *string
	if i.DefaultStorageType != nil {
		s := string(*i.DefaultStorageType)
		storageType = &s
	}
	return &ItemResponse{
		ID:                 i.ID,
		Name:               i.Name,
		Description:        i.Description,
		UPC:                i.UPC,
		DefaultStorageType: storageType,
		IsActive:           i.IsActive,
		CreatedBy:          i.CreatedBy,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

func ToLocationResponse(l *domainInventory.Location) *LocationResponse {
	if l == nil {
		return nil
	}
	return &LocationResponse{
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

func ToSKUResponse(s *domainInventory.SKU) *SKUResponse {
	if s == nil {
		return nil
	}
	return &SKUResponse{
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
		Item:       ToItemResponse(s.Item),
		Location:   ToLocationResponse(s.Location),
	}
}

func ToAlertResponse(a *domainInventory.Alert) *AlertResponse {
	if a == nil {
		return nil
	}
	return &AlertResponse{
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
