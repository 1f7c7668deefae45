package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
	Update(ctx context.Context, user *User) error
	// SetAPIKey stores a new key, or revokes the existing one when key is nil.
	SetAPIKey(ctx context.Context, userID uuid.UUID, key *string) error
	// Deactivate soft-disables the account; the row is kept.
	Deactivate(ctx context.Context, userID uuid.UUID) error
}
