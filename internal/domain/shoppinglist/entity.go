package shoppinglist

import (
	"time"

	"github.com/google/uuid"

	"stocky-backend/internal/domain/inventory"
	"stocky-backend/internal/domain/user"
)

// List is a shopping list. Visibility is binary: a public list can be viewed
// and modified by any authenticated user, a private one only by its creator.
// Deletion is always soft.
type List struct {
	ID        uuid.UUID
	Name      string
	IsPublic  bool
	CreatorID uuid.UUID
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Creator *user.User
	Items   []*ListItem
}

// AccessibleBy reports whether u may view the list. The same predicate gates
// modification: public lists are collaboratively editable by anyone
// authenticated, private lists belong to their creator alone.
func (l *List) AccessibleBy(u *user.User) bool {
	return l.IsPublic || l.CreatorID == u.ID
}

// ModifiableBy is AccessibleBy under a name that reads right at call sites
// guarding mutations.
func (l *List) ModifiableBy(u *user.User) bool {
	return l.AccessibleBy(u)
}

// ActiveItems filters out soft-deleted rows.
func (l *List) ActiveItems() []*ListItem {
	active := make([]*ListItem, 0, len(l.Items))
	for _, it := range l.Items {
		if !it.IsDeleted {
			active = append(active, it)
		}
	}
	return active
}

// ListItem is one line of a shopping list. At most one active row may exist
// per (list, catalog item) pair; re-adding a soft-deleted row resurrects it.
type ListItem struct {
	ID        uuid.UUID
	ListID    uuid.UUID
	ItemID    uuid.UUID
	Quantity  int
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Item *inventory.Item
}
