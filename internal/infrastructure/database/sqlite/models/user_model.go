package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is the database row for a user account.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Username       string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email          string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	HashedPassword string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(20);not null;default:'member'"`
	IsActive       bool      `gorm:"not null;default:true"`
	APIKey         *string   `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
