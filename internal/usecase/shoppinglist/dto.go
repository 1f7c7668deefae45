package shoppinglist

import (
	"time"

	"github.com/google/uuid"

	domainList "stocky-backend/internal/domain/shoppinglist"
)

type CreateListRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	IsPublic bool   `json:"is_public"`
}

type UpdateListRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	IsPublic *bool   `json:"is_public"`
}

type DuplicateListRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	IsPublic bool   `json:"is_public"`
}

type AddItemRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type ListItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListResponse struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	IsPublic        bool               `json:"is_public"`
	CreatorID       uuid.UUID          `json:"creator_id"`
	CreatorUsername string             `json:"creator_username,omitempty"`
	IsDeleted       bool               `json:"is_deleted"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Items           []ListItemResponse `json:"items"`
}

type ListsResponse struct {
	Lists      []ListResponse `json:"lists"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

type LogResponse struct {
	ID         uuid.UUID              `json:"id"`
	ListID     uuid.UUID              `json:"list_id"`
	UserID     uuid.UUID              `json:"user_id"`
	Username   string                 `json:"username,omitempty"`
	ActionType string                 `json:"action_type"`
	Details    map[string]interface{} `json:"details"`
	Timestamp  time.Time              `json:"timestamp"`
}

type LogListResponse struct {
	Logs       []LogResponse `json:"logs"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

func ToListItemResponse(i *domainList.ListItem) *ListItemResponse {
	if i == nil {
		return nil
	}
	resp := &ListItemResponse{
		ID:        i.ID,
		ItemID:    i.ItemID,
		Quantity:  i.Quantity,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
	if i.Item != nil {
		resp.ItemName = i.Item.Name
	}
	return resp
}

func ToListResponse(l *domainList.List) *ListResponse {
	if l == nil {
		return nil
	}
	resp := &ListResponse{
		ID:        l.ID,
		Name:      l.Name,
		IsPublic:  l.IsPublic,
		CreatorID: l.CreatorID,
		IsDeleted: l.IsDeleted,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Items:     []ListItemResponse{},
	}
	if l.Creator != nil {
		resp.CreatorUsername = l.Creator.Username
	}
	for _, item := range l.ActiveItems() {
		resp.Items = append(resp.Items, *ToListItemResponse(item))
	}
	return resp
}

func ToLogResponse(e *domainList.LogEntry) *LogResponse {
	if e == nil {
		return nil
	}
	resp := &LogResponse{
		ID:         e.ID,
		ListID:     e.ListID,
		UserID:     e.UserID,
		ActionType: string(e.ActionType),
		Details:    e.Details,
		Timestamp:  e.Timestamp,
	}
	if e.User != nil {
		resp.Username = e.User.Username
	}
	return resp
}
