package scanner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domainInventory "stocky-backend/internal/domain/inventory"
	domainScanner "stocky-backend/internal/domain/scanner"
	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/logger"
	"stocky-backend/internal/usecase/inventory"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

// Service resolves barcode scans against the catalog and tracks which user
// session is driving each physical scanner.
type Service struct {
	itemRepo domainInventory.ItemRepository
	skuRepo  domainInventory.SKURepository
	store    domainScanner.AssociationStore
}

func NewService(itemRepo domainInventory.ItemRepository, skuRepo domainInventory.SKURepository, store domainScanner.AssociationStore) *Service {
	return &Service{
		itemRepo: itemRepo,
		skuRepo:  skuRepo,
		store:    store,
	}
}

// Scan resolves a UPC to its catalog item and stock rows. An unknown UPC is a
// normal outcome, not an error.
func (s *Service) Scan(ctx context.Context, actor *domainUser.User, req *ScanRequest) (*ScanResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	resp, err := s.lookup(ctx, req.UPC)
	if err != nil {
		return nil, err
	}

	if actor != nil {
		fields := []zap.Field{
			zap.String("upc", req.UPC),
			zap.String("scanner_id", req.ScannerID),
			zap.String("user_id", actor.ID.String()),
			zap.String("event", "scanner_scan"),
		}
		if resp.Item != nil {
			fields = append(fields, zap.String("item_id", resp.Item.ID.String()), zap.Int("sku_count", len(resp.SKUs)))
			logger.Info("Item scanned", fields...)
		} else {
			logger.Info("Unknown UPC scanned", fields...)
		}
	}

	return resp, nil
}

// Lookup is a manual UPC lookup without scanner hardware.
func (s *Service) Lookup(ctx context.Context, actor *domainUser.User, upc string) (*ScanResponse, error) {
	resp, err := s.lookup(ctx, upc)
	if err != nil {
		return nil, err
	}

	logger.Info("Manual UPC lookup",
		zap.String("upc", upc),
		zap.String("user_id", actor.ID.String()),
		zap.Bool("found", resp.Success),
		zap.String("event", "upc_lookup"),
	)

	return resp, nil
}

func (s *Service) lookup(ctx context.Context, upc string) (*ScanResponse, error) {
	item, err := s.itemRepo.GetByUPC(ctx, upc)
	if errors.Is(err, appErrors.ErrItemNotFound) {
		return &ScanResponse{
			Success: false,
			Message: fmt.Sprintf("Unknown UPC: %s", upc),
			SKUs:    []inventory.SKUResponse{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	skus, err := s.skuRepo.ListByItem(ctx, item.ID, 0, 100)
	if err != nil {
		return nil, err
	}

	skuResponses := make([]inventory.SKUResponse, len(skus))
	for i, sku := range skus {
		skuResponses[i] = *inventory.ToSKUResponse(sku)
	}

	return &ScanResponse{
		Success: true,
		Message: fmt.Sprintf("Found item: %s", item.Name),
		Item:    inventory.ToItemResponse(item),
		SKUs:    skuResponses,
	}, nil
}

// Associate binds a scanner to a user session. When no username is given the
// scanner is bound to the caller.
func (s *Service) Associate(ctx context.Context, actor *domainUser.User, req *AssociateRequest) (*AssociationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	username := req.Username
	if username == "" {
		username = actor.Username
	}

	if err := s.store.Set(ctx, req.ScannerID, username); err != nil {
		return nil, err
	}

	logger.Info("Scanner associated",
		zap.String("scanner_id", req.ScannerID),
		zap.String("username", username),
		zap.String("event", "scanner_associated"),
	)

	association, err := s.store.Get(ctx, req.ScannerID)
	if err != nil {
		return nil, err
	}

	return ToAssociationResponse(association), nil
}

func (s *Service) Disassociate(ctx context.Context, scannerID string) error {
	if err := s.store.Delete(ctx, scannerID); err != nil {
		return err
	}

	logger.Info("Scanner disassociated",
		zap.String("scanner_id", scannerID),
		zap.String("event", "scanner_disassociated"),
	)

	return nil
}

// Status reports whether a scanner is currently bound to a user session.
func (s *Service) Status(ctx context.Context, scannerID string) (*StatusResponse, error) {
	association, err := s.store.Get(ctx, scannerID)
	if errors.Is(err, appErrors.ErrScannerNotAssociated) {
		return &StatusResponse{ScannerID: scannerID, IsAssociated: false}, nil
	}
	if err != nil {
		return nil, err
	}

	return &StatusResponse{
		ScannerID:      scannerID,
		IsAssociated:   true,
		AssociatedUser: &association.Username,
		LastSeen:       &association.UpdatedAt,
	}, nil
}

func (s *Service) ListAssociations(ctx context.Context) (*AssociationListResponse, error) {
	associations, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]AssociationResponse, len(associations))
	for i, a := range associations {
		responses[i] = *ToAssociationResponse(a)
	}

	return &AssociationListResponse{
		Associations: responses,
		Count:        len(responses),
	}, nil
}
