package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stocky-backend/internal/middleware"
	"stocky-backend/internal/usecase/inventory"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

type ItemHandler struct {
	service *inventory.Service
}

func NewItemHandler(service *inventory.Service) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/items")
	{
		items.GET("", h.ListItems)
		items.GET("/search", h.SearchItems)
		items.GET("/:item_id", h.GetItem)
		items.POST("", middleware.MemberOnly(), h.CreateItem)
		items.PUT("/:item_id", middleware.MemberOnly(), h.UpdateItem)
		items.DELETE("/:item_id", middleware.MemberOnly(), h.DeleteItem)
	}
}

func (h *ItemHandler) ListItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	includeInactive := c.Query("include_inactive") == "true"

	items, err := h.service.ListItems(c.Request.Context(), page, pageSize, includeInactive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Items retrieved successfully", items)
}

func (h *ItemHandler) SearchItems(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Search query required")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, err := h.service.SearchItems(c.Request.Context(), query, page, pageSize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Search results retrieved", items)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item retrieved successfully", item)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return
	}

	var req inventory.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), actor, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Item created successfully", item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req inventory.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), itemID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item updated successfully", item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.service.DeactivateItem(c.Request.Context(), itemID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item deactivated successfully", nil)
}
