package shoppinglist

import (
	"time"

	"github.com/google/uuid"

	"stocky-backend/internal/domain/user"
)

// ActionType identifies which mutation a log entry describes.
type ActionType string

const (
	ActionCreated     ActionType = "created"
	ActionUpdated     ActionType = "updated"
	ActionDeleted     ActionType = "deleted"
	ActionDuplicated  ActionType = "duplicated"
	ActionItemAdded   ActionType = "item_added"
	ActionItemUpdated ActionType = "item_updated"
	ActionItemRemoved ActionType = "item_removed"
)

// LogEntry is one append-only audit record. Entries are written in the same
// transaction as the mutation they describe and are never updated or deleted.
type LogEntry struct {
	ID         uuid.UUID
	ListID     uuid.UUID
	UserID     uuid.UUID
	ActionType ActionType
	// Details is a free-form payload serialized to JSON for storage. A stored
	// payload that no longer deserializes is surfaced as {"raw": <stored>}.
	Details   map[string]interface{}
	Timestamp time.Time

	User *user.User
}

func NewLogEntry(listID uuid.UUID, actor *user.User, action ActionType, details map[string]interface{}) *LogEntry {
	return &LogEntry{
		ListID:     listID,
		UserID:     actor.ID,
		ActionType: action,
		Details:    details,
	}
}
