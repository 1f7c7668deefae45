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

func (s *Service) CreateItem(ctx context.Context, actor *domainUser.User, req *CreateItemRequest) (*ItemResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.UPC != nil {
		if existing, _ := s.itemRepo.GetByUPC(ctx, *req.UPC); existing != nil {
			return nil, appErrors.ErrUPCAlreadyExists
		}
	}

	var storageType *domainInventory.StorageType
	if req.DefaultStorageType != nil {
		t := domainInventory.StorageType(*req.DefaultStorageType)
		storageType = &t
	}

	item := &domainInventory.Item{
		Name:               utils.SanitizeString(req.Name),
		Description:        utils.SanitizeString(req.Description),
		UPC:                req.UPC,
		DefaultStorageType: storageType,
		CreatedBy:          actor.ID,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("Item created",
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name),
		zap.String("event", "item_created"),
	)

	return ToItemResponse(item), nil
}

func (s *Service) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

func (s *Service) GetItemByUPC(ctx context.Context, upc string) (*ItemResponse, error) {
	item, err := s.itemRepo.GetByUPC(ctx, upc)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

func (s *Service) ListItems(ctx context.Context, page, pageSize int, includeInactive bool) (*ItemListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	items, total, err := s.itemRepo.List(ctx, (page-1)*pageSize, pageSize, includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = *ToItemResponse(item)
	}

	return &ItemListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *Service) SearchItems(ctx context.Context, query string, page, pageSize int) ([]ItemResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	items, err := s.itemRepo.Search(ctx, query, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = *ToItemResponse(item)
	}

	return responses, nil
}

func (s *Service) UpdateItem(ctx context.Context, itemID uuid.UUID, req *UpdateItemRequest) (*ItemResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = utils.SanitizeString(*req.Name)
	}
	if req.Description != nil {
		item.Description = utils.SanitizeString(*req.Description)
	}
	if req.UPC != nil {
		if existing, _ := s.itemRepo.GetByUPC(ctx, *req.UPC); existing != nil && existing.ID != itemID {
			return nil, appErrors.ErrUPCAlreadyExists
		}
		item.UPC = req.UPC
	}
	if req.DefaultStorageType != nil {
		t := domainInventory.StorageType(*req.DefaultStorageType)
		item.DefaultStorageType = &t
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("Item updated",
		zap.String("item_id", itemID.String()),
		zap.String("event", "item_updated"),
	)

	return ToItemResponse(item), nil
}

func (s *Service) DeactivateItem(ctx context.Context, itemID uuid.UUID) error {
	if err := s.itemRepo.Deactivate(ctx, itemID); err != nil {
		return err
	}

	logger.Info("Item deactivated",
		zap.String("item_id", itemID.String()),
		zap.String("event", "item_deactivated"),
	)

	return nil
}
