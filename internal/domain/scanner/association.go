package scanner

import (
	"context"
	"time"
)

// Association binds a physical scanner to the user session driving it.
type Association struct {
	ScannerID string
	Username  string
	UpdatedAt time.Time
}

// AssociationStore is the injected home for scanner associations. Earlier
// revisions kept these in a process-global map; a store keeps them durable
// and safe across concurrent requests.
type AssociationStore interface {
	Get(ctx context.Context, scannerID string) (*Association, error)
	Set(ctx context.Context, scannerID, username string) error
	// Delete removes a binding and returns ErrScannerNotAssociated when none
	// exists.
	Delete(ctx context.Context, scannerID string) error
	List(ctx context.Context) ([]*Association, error)
}
