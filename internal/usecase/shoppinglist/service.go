package shoppinglist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainInventory "stocky-backend/internal/domain/inventory"
	domainList "stocky-backend/internal/domain/shoppinglist"
	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/logger"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

// Service implements the shopping list use cases. Public lists are
// collaboratively editable by any authenticated user; private lists are
// invisible and immutable to everyone but their creator. Every committed
// mutation carries exactly one audit log entry.
type Service struct {
	listRepo domainList.Repository
	itemRepo domainInventory.ItemRepository
	notifier Notifier
}

func NewService(listRepo domainList.Repository, itemRepo domainInventory.ItemRepository, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		listRepo: listRepo,
		itemRepo: itemRepo,
		notifier: notifier,
	}
}

// ListLists returns lists visible to the actor. Soft-deleted lists are only
// included when an admin explicitly asks for them.
func (s *Service) ListLists(ctx context.Context, actor *domainUser.User, includeDeleted bool, page, pageSize int) (*ListsResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	if includeDeleted && actor.Role != domainUser.RoleAdmin {
		includeDeleted = false
	}

	lists, total, err := s.listRepo.ListAccessible(ctx, actor, includeDeleted, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]ListResponse, len(lists))
	for i, l := range lists {
		responses[i] = *ToListResponse(l)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ListsResponse{
		Lists:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) GetList(ctx context.Context, actor *domainUser.User, listID uuid.UUID) (*ListResponse, error) {
	list, err := s.listRepo.GetIfAccessible(ctx, listID, actor)
	if err != nil {
		return nil, err
	}
	return ToListResponse(list), nil
}

func (s *Service) CreateList(ctx context.Context, actor *domainUser.User, req *CreateListRequest) (*ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	list := &domainList.List{
		Name:      utils.SanitizeString(req.Name),
		IsPublic:  req.IsPublic,
		CreatorID: actor.ID,
	}
	entry := domainList.NewLogEntry(list.ID, actor, domainList.ActionCreated, map[string]interface{}{
		"list_name": list.Name,
		"is_public": list.IsPublic,
	})

	if err := s.listRepo.Create(ctx, list, entry); err != nil {
		return nil, err
	}

	logger.Info("Shopping list created",
		zap.String("list_id", list.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("event", "shopping_list_created"),
	)

	s.notifier.Publish(&ListEvent{ListID: list.ID, Action: string(domainList.ActionCreated), ActorID: actor.ID, Details: entry.Details})

	return ToListResponse(list), nil
}

// UpdateList applies the fields present in the patch. The log entry records a
// field-level diff of what actually changed; a patch that changes nothing
// commits nothing and logs nothing.
func (s *Service) UpdateList(ctx context.Context, actor *domainUser.User, listID uuid.UUID, req *UpdateListRequest) (*ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	list, err := s.listRepo.GetIfAccessible(ctx, listID, actor)
	if err != nil {
		return nil, err
	}
	if !list.ModifiableBy(actor) {
		return nil, appErrors.ErrListNotFound
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		name := utils.SanitizeString(*req.Name)
		if name != list.Name {
			changes["name"] = map[string]interface{}{"from": list.Name, "to": name}
			list.Name = name
		}
	}
	if req.IsPublic != nil && *req.IsPublic != list.IsPublic {
		changes["is_public"] = map[string]interface{}{"from": list.IsPublic, "to": *req.IsPublic}
		list.IsPublic = *req.IsPublic
	}

	if len(changes) == 0 {
		return ToListResponse(list), nil
	}

	entry := domainList.NewLogEntry(list.ID, actor, domainList.ActionUpdated, map[string]interface{}{
		"changes": changes,
	})

	if err := s.listRepo.Update(ctx, list, entry); err != nil {
		return nil, err
	}

	logger.Info("Shopping list updated",
		zap.String("list_id", listID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("event", "shopping_list_updated"),
	)

	s.notifier.Publish(&ListEvent{ListID: list.ID, Action: string(domainList.ActionUpdated), ActorID: actor.ID, Details: entry.Details})

	return ToListResponse(list), nil
}

// DeleteList soft-deletes. There is no un-delete operation.
func (s *Service) DeleteList(ctx context.Context, actor *domainUser.User, listID uuid.UUID) error {
	list, err := s.listRepo.GetIfAccessible(ctx, listID, actor)
	if err != nil {
		return err
	}
	if !list.ModifiableBy(actor) {
		return appErrors.ErrListNotFound
	}

	entry := domainList.NewLogEntry(list.ID, actor, domainList.ActionDeleted, map[string]interface{}{
		"list_name": list.Name,
	})

	if err := s.listRepo.SoftDelete(ctx, list, entry); err != nil {
		return err
	}

	logger.Info("Shopping list deleted",
		zap.String("list_id", listID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("event", "shopping_list_deleted"),
	)

	s.notifier.Publish(&ListEvent{ListID: list.ID, Action: string(domainList.ActionDeleted), ActorID: actor.ID, Details: entry.Details})

	return nil
}

// DuplicateList copies the active items of an accessible list into a new list
// owned by the actor, whoever created the source.
func (s *Service) DuplicateList(ctx context.Context, actor *domainUser.User, sourceID uuid.UUID, req *DuplicateListRequest) (*ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	source, err := s.listRepo.GetIfAccessible(ctx, sourceID, actor)
	if err != nil {
		return nil, err
	}

	newList := &domainList.List{
		Name:      utils.SanitizeString(req.Name),
		IsPublic:  req.IsPublic,
		CreatorID: actor.ID,
	}

	var items []*domainList.ListItem
	for _, src := range source.ActiveItems() {
		items = append(items, &domainList.ListItem{
			ItemID:   src.ItemID,
			Quantity: src.Quantity,
		})
	}

	entry := domainList.NewLogEntry(newList.ID, actor, domainList.ActionDuplicated, map[string]interface{}{
		"source_list_id":   source.ID.String(),
		"source_list_name": source.Name,
		"new_list_name":    newList.Name,
	})

	if err := s.listRepo.CreateWithItems(ctx, newList, items, entry); err != nil {
		return nil, err
	}

	logger.Info("Shopping list duplicated",
		zap.String("source_list_id", sourceID.String()),
		zap.String("new_list_id", newList.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("event", "shopping_list_duplicated"),
	)

	s.notifier.Publish(&ListEvent{ListID: newList.ID, Action: string(domainList.ActionDuplicated), ActorID: actor.ID, Details: entry.Details})

	created, err := s.listRepo.GetIfAccessible(ctx, newList.ID, actor)
	if err != nil {
		return nil, err
	}

	return ToListResponse(created), nil
}

// AddItem inserts a new row, or resurrects a soft-deleted one with the new
// quantity. An active duplicate is a conflict.
func (s *Service) AddItem(ctx context.Context, actor *domainUser.User, listID uuid.UUID, req *AddItemRequest) (*ListItemResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	list, err := s.listRepo.GetIfAccessible(ctx, listID, actor)
	if err != nil {
		return nil, err
	}
	if !list.ModifiableBy(actor) {
		return nil, appErrors.ErrListNotFound
	}

	catalogItem, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	entry := domainList.NewLogEntry(list.ID, actor, domainList.ActionItemAdded, map[string]interface{}{
		"item_id":   catalogItem.ID.String(),
		"item_name": catalogItem.Name,
		"quantity":  req.Quantity,
	})

	existing, err := s.listRepo.FindListItemAnyState(ctx, listID, req.ItemID)
	switch {
	case err != nil && !errors.Is(err, appErrors.ErrListItemNotFound):
		return nil, err
	case err == nil && !existing.IsDeleted:
		return nil, appErrors.ErrListItemAlreadyAdded
	case err == nil:
		// Soft-deleted row: resurrect it instead of inserting a duplicate.
		existing.IsDeleted = false
		existing.Quantity = req.Quantity
		if err := s.listRepo.UpdateItem(ctx, existing, entry); err != nil {
			return nil, err
		}
		existing.Item = catalogItem
		s.publishItemEvent(list.ID, actor, domainList.ActionItemAdded, entry)
		return ToListItemResponse(existing), nil
	}

	item := &domainList.ListItem{
		ListID:   list.ID,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	}
	if err := s.listRepo.CreateItem(ctx, item, entry); err != nil {
		return nil, err
	}
	item.Item = catalogItem

	s.publishItemEvent(list.ID, actor, domainList.ActionItemAdded, entry)

	return ToListItemResponse(item), nil
}

// UpdateItemQuantity overwrites the quantity. Setting the same value is a
// no-op that writes no log entry, matching list-level update gating.
func (s *Service) UpdateItemQuantity(ctx context.Context, actor *domainUser.User, listID, itemID uuid.UUID, req *UpdateItemQuantityRequest) (*ListItemResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	list, err := s.listRepo.GetIfAccessible(ctx, listID, actor)
	if err != nil {
		return nil, err
	}
	if !list.ModifiableBy(actor) {
		return nil, appErrors.ErrListNotFound
	}

	item, err := s.listRepo.GetListItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}

	if item.Quantity == req.Quantity {
		return ToListItemResponse(item), nil
	}

	itemName := ""
	if item.Item != nil {
		itemName = item.Item.Name
	}
	entry := domainList.NewLogEntry(list.ID, actor, domainList.ActionItemUpdated, map[string]interface{}{
		"item_id":   item.ItemID.String(),
		"item_name": itemName,
		"quantity":  map[string]interface{}{"from": item.Quantity, "to": req.Quantity},
	})

	item.Quantity = req.Quantity
	if err := s.listRepo.UpdateItem(ctx, item, entry); err != nil {
		return nil, err
	}

	s.publishItemEvent(list.ID, actor, domainList.ActionItemUpdated, entry)

	return ToListItemResponse(item), nil
}

// RemoveItem soft-deletes a row. The log entry captures the row state as it
// was before deletion.
func (s *Service) RemoveItem(ctx context.Context, actor *domainUser.User, listID, itemID uuid.UUID) error {
	list, err := s.listRepo.GetIfAccessible(ctx, listID, actor)
	if err != nil {
		return err
	}
	if !list.ModifiableBy(actor) {
		return appErrors.ErrListNotFound
	}

	item, err := s.listRepo.GetListItem(ctx, listID, itemID)
	if err != nil {
		return err
	}

	itemName := ""
	if item.Item != nil {
		itemName = item.Item.Name
	}
	entry := domainList.NewLogEntry(list.ID, actor, domainList.ActionItemRemoved, map[string]interface{}{
		"item_id":   item.ItemID.String(),
		"item_name": itemName,
		"quantity":  item.Quantity,
	})

	if err := s.listRepo.SoftDeleteItem(ctx, item, entry); err != nil {
		return err
	}

	s.publishItemEvent(list.ID, actor, domainList.ActionItemRemoved, entry)

	return nil
}

// GetLogs returns the audit trail of an accessible list, newest first,
// optionally filtered by exact action type.
func (s *Service) GetLogs(ctx context.Context, actor *domainUser.User, listID uuid.UUID, actionType string, page, pageSize int) (*LogListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}

	if _, err := s.listRepo.GetIfAccessible(ctx, listID, actor); err != nil {
		return nil, err
	}

	entries, total, err := s.listRepo.GetLogs(ctx, listID, actionType, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]LogResponse, len(entries))
	for i, e := range entries {
		responses[i] = *ToLogResponse(e)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &LogListResponse{
		Logs:       responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) publishItemEvent(listID uuid.UUID, actor *domainUser.User, action domainList.ActionType, entry *domainList.LogEntry) {
	s.notifier.Publish(&ListEvent{
		ListID:  listID,
		Action:  string(action),
		ActorID: actor.ID,
		Details: entry.Details,
	})
}
