package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account able to authenticate by password, bearer token or API key.
// Accounts are never hard-deleted; deactivation clears IsActive and takes
// effect on the next authenticated request.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	HashedPassword string
	Role           Role
	IsActive       bool
	// APIKey is an opaque static credential, nil when none was generated.
	APIKey    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
