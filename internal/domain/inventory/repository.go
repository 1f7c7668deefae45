package inventory

import (
	"context"

	"github.com/google/uuid"
)

type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	GetByUPC(ctx context.Context, upc string) (*Item, error)
	List(ctx context.Context, offset, limit int, includeInactive bool) ([]*Item, int64, error)
	Search(ctx context.Context, query string, offset, limit int) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type LocationRepository interface {
	Create(ctx context.Context, location *Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	List(ctx context.Context, offset, limit int, includeInactive bool) ([]*Location, int64, error)
	Update(ctx context.Context, location *Location) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type SKURepository interface {
	Create(ctx context.Context, sku *SKU) error
	GetByID(ctx context.Context, id uuid.UUID) (*SKU, error)
	GetByItemLocation(ctx context.Context, itemID, locationID uuid.UUID) (*SKU, error)
	ListByItem(ctx context.Context, itemID uuid.UUID, offset, limit int) ([]*SKU, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID, offset, limit int) ([]*SKU, error)
	List(ctx context.Context, offset, limit int, includeInactive bool) ([]*SKU, int64, error)
	ListLowStock(ctx context.Context, threshold float64, offset, limit int) ([]*SKU, error)
	Search(ctx context.Context, query string, offset, limit int) ([]*SKU, error)
	Update(ctx context.Context, sku *SKU) error
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity float64) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*Alert, error)
	ListActive(ctx context.Context, offset, limit int) ([]*Alert, int64, error)
	Acknowledge(ctx context.Context, id uuid.UUID) error
}
