package shoppinglist

import (
	"github.com/google/uuid"
)

// ListEvent describes a committed mutation, pushed to live subscribers of the
// affected list.
type ListEvent struct {
	ListID  uuid.UUID              `json:"list_id"`
	Action  string                 `json:"action"`
	ActorID uuid.UUID              `json:"actor_id"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Notifier fans committed list events out to live subscribers. Publishing is
// best-effort and happens after the transaction commits; a lost event never
// fails the request.
type Notifier interface {
	Publish(event *ListEvent)
}

// NopNotifier discards events, for wiring without a live-update transport.
type NopNotifier struct{}

func (NopNotifier) Publish(*ListEvent) {}
