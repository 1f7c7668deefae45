package backup

import "context"

// Snapshot describes one stored backup of the relational store.
type Snapshot struct {
	Name string
	Path string
	Size int64
}

// Service serializes the full relational store. The mechanism is a
// collaborator detail; callers only rely on getting a consistent snapshot
// file back.
type Service interface {
	// Create writes a new snapshot and returns its descriptor.
	Create(ctx context.Context) (*Snapshot, error)
	List(ctx context.Context) ([]*Snapshot, error)
	// Open resolves a snapshot by name so the transport layer can stream it.
	Open(ctx context.Context, name string) (*Snapshot, error)
}
