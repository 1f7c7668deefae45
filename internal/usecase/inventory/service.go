package inventory

import (
	domainInventory "stocky-backend/internal/domain/inventory"
)

// Service implements catalog use cases for items, locations, SKUs and alerts.
type Service struct {
	itemRepo     domainInventory.ItemRepository
	locationRepo domainInventory.LocationRepository
	skuRepo      domainInventory.SKURepository
	alertRepo    domainInventory.AlertRepository
}

func NewService(
	itemRepo domainInventory.ItemRepository,
	locationRepo domainInventory.LocationRepository,
	skuRepo domainInventory.SKURepository,
	alertRepo domainInventory.AlertRepository,
) *Service {
	return &Service{
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		skuRepo:      skuRepo,
		alertRepo:    alertRepo,
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
