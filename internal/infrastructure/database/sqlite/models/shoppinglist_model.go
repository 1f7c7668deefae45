package models

import (
	"time"

	"github.com/google/uuid"
)

type ShoppingListModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	IsPublic  bool      `gorm:"not null;default:false"`
	CreatorID uuid.UUID `gorm:"type:varchar(36);not null;index"`
	IsDeleted bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Creator *UserModel               `gorm:"foreignKey:CreatorID"`
	Items   []*ShoppingListItemModel `gorm:"foreignKey:ListID"`
}

func (ShoppingListModel) TableName() string {
	return "shopping_lists"
}

type ShoppingListItemModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	ListID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_list_item"`
	ItemID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_list_item"`
	Quantity  int       `gorm:"not null"`
	IsDeleted bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Item *ItemModel `gorm:"foreignKey:ItemID"`
}

func (ShoppingListItemModel) TableName() string {
	return "shopping_list_items"
}

// ShoppingListLogModel rows are append-only; nothing in the code path updates
// or deletes them.
type ShoppingListLogModel struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	ListID     uuid.UUID `gorm:"type:varchar(36);not null;index"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null"`
	ActionType string    `gorm:"type:varchar(20);not null;index"`
	Details    string    `gorm:"type:text"`
	Timestamp  time.Time `gorm:"not null;index"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (ShoppingListLogModel) TableName() string {
	return "shopping_list_logs"
}
