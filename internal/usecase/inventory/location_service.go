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

func (s *Service) CreateLocation(ctx context.Context, actor *domainUser.User, req *CreateLocationRequest) (*LocationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	location := &domainInventory.Location{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		StorageType: domainInventory.StorageType(req.StorageType),
		CreatedBy:   actor.ID,
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}

	logger.Info("Location created",
		zap.String("location_id", location.ID.String()),
		zap.String("name", location.Name),
		zap.String("event", "location_created"),
	)

	return ToLocationResponse(location), nil
}

func (s *Service) GetLocation(ctx context.Context, locationID uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return ToLocationResponse(location), nil
}

func (s *Service) ListLocations(ctx context.Context, page, pageSize int, includeInactive bool) (*LocationListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	locations, total, err := s.locationRepo.List(ctx, (page-1)*pageSize, pageSize, includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]LocationResponse, len(locations))
	for i, location := range locations {
		responses[i] = *ToLocationResponse(location)
	}

	return &LocationListResponse{
		Locations:  responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *Service) UpdateLocation(ctx context.Context, locationID uuid.UUID, req *UpdateLocationRequest) (*LocationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	location, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		location.Name = utils.SanitizeString(*req.Name)
	}
	if req.Description != nil {
		location.Description = utils.SanitizeString(*req.Description)
	}
	if req.StorageType != nil {
		location.StorageType = domainInventory.StorageType(*req.StorageType)
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}

	logger.Info("Location updated",
		zap.String("location_id", locationID.String()),
		zap.String("event", "location_updated"),
	)

	return ToLocationResponse(location), nil
}

func (s *Service) DeactivateLocation(ctx context.Context, locationID uuid.UUID) error {
	if err := s.locationRepo.Deactivate(ctx, locationID); err != nil {
		return err
	}

	logger.Info("Location deactivated",
		zap.String("location_id", locationID.String()),
		zap.String("event", "location_deactivated"),
	)

	return nil
}
