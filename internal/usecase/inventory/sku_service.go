package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainInventory "stocky-backend/internal/domain/inventory"
	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/logger"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

func (s *Service) CreateSKU(ctx context.Context, actor *domainUser.User, req *CreateSKURequest) (*SKUResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.itemRepo.GetByID(ctx, req.ItemID); err != nil {
		return nil, err
	}
	if _, err := s.locationRepo.GetByID(ctx, req.LocationID); err != nil {
		return nil, err
	}

	// One active SKU per (item, location) pair.
	if existing, _ := s.skuRepo.GetByItemLocation(ctx, req.ItemID, req.LocationID); existing != nil {
		return nil, appErrors.ErrSKUAlreadyExists
	}

	sku := &domainInventory.SKU{
		ItemID:     req.ItemID,
		LocationID: req.LocationID,
		Quantity:   req.Quantity,
		Unit:       utils.SanitizeString(req.Unit),
		ExpiryDate: req.ExpiryDate,
		Notes:      utils.SanitizeString(req.Notes),
		CreatedBy:  actor.ID,
	}

	if err := s.skuRepo.Create(ctx, sku); err != nil {
		return nil, err
	}

	created, err := s.skuRepo.GetByID(ctx, sku.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("SKU created",
		zap.String("sku_id", sku.ID.String()),
		zap.String("item_id", req.ItemID.String()),
		zap.String("location_id", req.LocationID.String()),
		zap.String("event", "sku_created"),
	)

	return ToSKUResponse(created), nil
}

func (s *Service) GetSKU(ctx context.Context, skuID uuid.UUID) (*SKUResponse, error) {
	sku, err := s.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return nil, err
	}
	return ToSKUResponse(sku), nil
}

func (s *Service) ListSKUs(ctx context.Context, page, pageSize int, includeInactive bool) (*SKUListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	skus, total, err := s.skuRepo.List(ctx, (page-1)*pageSize, pageSize, includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]SKUResponse, len(skus))
	for i, sku := range skus {
		responses[i] = *ToSKUResponse(sku)
	}

	return &SKUListResponse{
		SKUs:       responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *Service) ListLowStockSKUs(ctx context.Context, threshold float64, page, pageSize int) ([]SKUResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	if threshold <= 0 {
		threshold = 1
	}

	skus, err := s.skuRepo.ListLowStock(ctx, threshold, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]SKUResponse, len(skus))
	for i, sku := range skus {
		responses[i] = *ToSKUResponse(sku)
	}

	return responses, nil
}

func (s *Service) SearchSKUs(ctx context.Context, query string, page, pageSize int) ([]SKUResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	skus, err := s.skuRepo.Search(ctx, query, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]SKUResponse, len(skus))
	for i, sku := range skus {
		responses[i] = *ToSKUResponse(sku)
	}

	return responses, nil
}

func (s *Service) UpdateSKU(ctx context.Context, skuID uuid.UUID, req *UpdateSKURequest) (*SKUResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	sku, err := s.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return nil, err
	}

	if req.LocationID != nil && *req.LocationID != sku.LocationID {
		if _, err := s.locationRepo.GetByID(ctx, *req.LocationID); err != nil {
			return nil, err
		}
		if existing, _ := s.skuRepo.GetByItemLocation(ctx, sku.ItemID, *req.LocationID); existing != nil {
			return nil, appErrors.ErrSKUAlreadyExists
		}
		sku.LocationID = *req.LocationID
	}
	if req.Quantity != nil {
		sku.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		sku.Unit = utils.SanitizeString(*req.Unit)
	}
	if req.ExpiryDate != nil {
		sku.ExpiryDate = req.ExpiryDate
	}
	if req.Notes != nil {
		sku.Notes = utils.SanitizeString(*req.Notes)
	}
	if req.IsActive != nil {
		sku.IsActive = *req.IsActive
	}

	if err := s.skuRepo.Update(ctx, sku); err != nil {
		return nil, err
	}

	updated, err := s.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return nil, err
	}

	logger.Info("SKU updated",
		zap.String("sku_id", skuID.String()),
		zap.String("event", "sku_updated"),
	)

	return ToSKUResponse(updated), nil
}

func (s *Service) UpdateSKUQuantity(ctx context.Context, skuID uuid.UUID, req *UpdateQuantityRequest) (*SKUResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.skuRepo.UpdateQuantity(ctx, skuID, req.Quantity); err != nil {
		return nil, err
	}

	updated, err := s.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return nil, err
	}

	logger.Info("SKU quantity updated",
		zap.String("sku_id", skuID.String()),
		zap.Float64("quantity", req.Quantity),
		zap.String("event", "sku_quantity_updated"),
	)

	return ToSKUResponse(updated), nil
}

func (s *Service) DeactivateSKU(ctx context.Context, skuID uuid.UUID) error {
	if err := s.skuRepo.Deactivate(ctx, skuID); err != nil {
		return err
	}

	logger.Info("SKU deactivated",
		zap.String("sku_id", skuID.String()),
		zap.String("event", "sku_deactivated"),
	)

	return nil
}
