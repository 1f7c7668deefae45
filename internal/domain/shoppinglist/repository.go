package shoppinglist

import (
	"context"

	"github.com/google/uuid"

	"stocky-backend/internal/domain/user"
)

// Repository persists lists, their items and their audit trail. Every method
// that takes a *LogEntry must commit the entity mutation and the log row in a
// single transaction: if the log write fails the mutation is rolled back.
type Repository interface {
	// ListAccessible returns lists that are public or owned by viewer,
	// excluding soft-deleted ones unless includeDeleted is set.
	ListAccessible(ctx context.Context, viewer *user.User, includeDeleted bool, offset, limit int) ([]*List, int64, error)
	// GetIfAccessible loads a non-deleted list with its items, applying the
	// visibility predicate. An existing but inaccessible list is reported as
	// not found so private lists do not leak their existence.
	GetIfAccessible(ctx context.Context, listID uuid.UUID, viewer *user.User) (*List, error)

	Create(ctx context.Context, list *List, entry *LogEntry) error
	// Update persists list fields. A nil entry means the patch was a no-op
	// diff and nothing is logged.
	Update(ctx context.Context, list *List, entry *LogEntry) error
	SoftDelete(ctx context.Context, list *List, entry *LogEntry) error
	// CreateWithItems inserts a list together with item rows, used by
	// duplication. All rows and the log entry commit atomically.
	CreateWithItems(ctx context.Context, list *List, items []*ListItem, entry *LogEntry) error

	// GetListItem returns the active row for (list, catalog item), or
	// ErrListItemNotFound.
	GetListItem(ctx context.Context, listID, itemID uuid.UUID) (*ListItem, error)
	// FindListItemAnyState also matches soft-deleted rows, so adds can
	// resurrect instead of inserting duplicates.
	FindListItemAnyState(ctx context.Context, listID, itemID uuid.UUID) (*ListItem, error)
	CreateItem(ctx context.Context, item *ListItem, entry *LogEntry) error
	UpdateItem(ctx context.Context, item *ListItem, entry *LogEntry) error
	SoftDeleteItem(ctx context.Context, item *ListItem, entry *LogEntry) error

	// GetLogs returns entries newest-first, optionally filtered by exact
	// action type.
	GetLogs(ctx context.Context, listID uuid.UUID, actionType string, offset, limit int) ([]*LogEntry, int64, error)
}
