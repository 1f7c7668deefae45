package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/middleware"
	"stocky-backend/internal/usecase/shoppinglist"
	"stocky-backend/internal/ws"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

type ShoppingListHandler struct {
	service *shoppinglist.Service
	hub     *ws.Hub
}

func NewShoppingListHandler(service *shoppinglist.Service, hub *ws.Hub) *ShoppingListHandler {
	return &ShoppingListHandler{service: service, hub: hub}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/shopping-lists")
	{
		lists.GET("", h.ListLists)
		lists.POST("", h.CreateList)
		lists.GET("/:list_id", h.GetList)
		lists.PUT("/:list_id", h.UpdateList)
		lists.DELETE("/:list_id", h.DeleteList)
		lists.POST("/:list_id/duplicate", h.DuplicateList)
		lists.POST("/:list_id/items", h.AddItem)
		lists.PUT("/:list_id/items/:item_id", h.UpdateItemQuantity)
		lists.DELETE("/:list_id/items/:item_id", h.RemoveItem)
		lists.GET("/:list_id/logs", h.GetLogs)
		lists.GET("/:list_id/ws", h.Subscribe)
	}
}

func (h *ShoppingListHandler) ListLists(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	includeDeleted := c.Query("include_deleted") == "true"

	lists, err := h.service.ListLists(c.Request.Context(), actor, includeDeleted, page, pageSize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping lists retrieved successfully", lists)
}

func (h *ShoppingListHandler) CreateList(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req shoppinglist.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := h.service.CreateList(c.Request.Context(), actor, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shopping list created successfully", list)
}

func (h *ShoppingListHandler) GetList(c *gin.Context) {
	actor, listID, ok := h.actorAndList(c)
	if !ok {
		return
	}

	list, err := h.service.GetList(c.Request.Context(), actor, listID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping list retrieved successfully", list)
}

func (h *ShoppingListHandler) UpdateList(c *gin.Context) {
	actor, listID, ok := h.actorAndList(c)
	if !ok {
		return
	}

	var req shoppinglist.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := h.service.UpdateList(c.Request.Context(), actor, listID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping list updated successfully", list)
}

func (h *ShoppingListHandler) DeleteList(c *gin.Context) {
	actor, listID, ok := h.actorAndList(c)
	if !ok {
		return
	}

	if err := h.service.DeleteList(c.Request.Context(), actor, listID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping list deleted successfully", nil)
}

func (h *ShoppingListHandler) DuplicateList(c *gin.Context) {
	actor, listID, ok := h.actorAndList(c)
	if !ok {
		return
	}

	var req shoppinglist.DuplicateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := h.service.DuplicateList(c.Request.Context(), actor, listID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shopping list duplicated successfully", list)
}

func (h *ShoppingListHandler) AddItem(c *gin.Context) {
	actor, listID, ok := h.actorAndList(c)
	if !ok {
		return
	}

	var req shoppinglist.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), actor, listID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Item added to shopping list", item)
}

func (h *ShoppingListHandler) UpdateItemQuantity(c *gin.Context) {
	actor, listID, ok := h.actorAndList(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req shoppinglist.UpdateItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.UpdateItemQuantity(c.Request.Context(), actor, listID, itemID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item quantity updated", item)
}

func (h *ShoppingListHandler) RemoveItem(c *gin.Context) {
	actor, listID, ok := h.actorAndList(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), actor, listID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item removed from shopping list", nil)
}

func (h *ShoppingListHandler) GetLogs(c *gin.Context) {
	actor, listID, ok := h.actorAndList(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	actionType := c.Query("action_type")

	logs, err := h.service.GetLogs(c.Request.Context(), actor, listID, actionType, page, pageSize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping list logs retrieved", logs)
}

// Subscribe upgrades to a websocket streaming live events for one list.
// Access is verified before the upgrade so private lists stay invisible.
func (h *ShoppingListHandler) Subscribe(c *gin.Context) {
	actor, listID, ok := h.actorAndList(c)
	if !ok {
		return
	}

	if _, err := h.service.GetList(c.Request.Context(), actor, listID); err != nil {
		respondWithError(c, err)
		return
	}

	h.hub.ServeList(c, listID)
}

func (h *ShoppingListHandler) actor(c *gin.Context) (*domainUser.User, bool) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return nil, false
	}
	return actor, true
}

func (h *ShoppingListHandler) actorAndList(c *gin.Context) (*domainUser.User, uuid.UUID, bool) {
	actor, ok := h.actor(c)
	if !ok {
		return nil, uuid.Nil, false
	}

	listID, err := uuid.Parse(c.Param("list_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid list ID")
		return nil, uuid.Nil, false
	}

	return actor, listID, true
}
