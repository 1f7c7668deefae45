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

type SKUHandler struct {
	service *inventory.Service
}

func NewSKUHandler(service *inventory.Service) *SKUHandler {
	return &SKUHandler{service: service}
}

func (h *SKUHandler) RegisterRoutes(router *gin.RouterGroup) {
	skus := router.Group("/skus")
	{
		skus.GET("", h.ListSKUs)
		skus.GET("/search", h.SearchSKUs)
		skus.GET("/low-stock", h.ListLowStock)
		skus.GET("/:sku_id", h.GetSKU)
		skus.POST("", middleware.MemberOnly(), h.CreateSKU)
		skus.PUT("/:sku_id", middleware.MemberOnly(), h.UpdateSKU)
		skus.PUT("/:sku_id/quantity", middleware.MemberOnly(), h.UpdateQuantity)
		skus.DELETE("/:sku_id", middleware.AdminOnly(), h.DeleteSKU)
	}
}

func (h *SKUHandler) ListSKUs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	includeInactive := c.Query("include_inactive") == "true"

	skus, err := h.service.ListSKUs(c.Request.Context(), page, pageSize, includeInactive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "SKUs retrieved successfully", skus)
}

func (h *SKUHandler) SearchSKUs(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Search query required")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	skus, err := h.service.SearchSKUs(c.Request.Context(), query, page, pageSize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Search results retrieved", skus)
}

func (h *SKUHandler) ListLowStock(c *gin.Context) {
	threshold, _ := strconv.ParseFloat(c.DefaultQuery("threshold", "1"), 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	skus, err := h.service.ListLowStockSKUs(c.Request.Context(), threshold, page, pageSize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Low stock SKUs retrieved", skus)
}

func (h *SKUHandler) GetSKU(c *gin.Context) {
	skuID, err := uuid.Parse(c.Param("sku_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid SKU ID")
		return
	}

	sku, err := h.service.GetSKU(c.Request.Context(), skuID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "SKU retrieved successfully", sku)
}

func (h *SKUHandler) CreateSKU(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return
	}

	var req inventory.CreateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sku, err := h.service.CreateSKU(c.Request.Context(), actor, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "SKU created successfully", sku)
}

func (h *SKUHandler) UpdateSKU(c *gin.Context) {
	skuID, err := uuid.Parse(c.Param("sku_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid SKU ID")
		return
	}

	var req inventory.UpdateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sku, err := h.service.UpdateSKU(c.Request.Context(), skuID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "SKU updated successfully", sku)
}

func (h *SKUHandler) UpdateQuantity(c *gin.Context) {
	skuID, err := uuid.Parse(c.Param("sku_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid SKU ID")
		return
	}

	var req inventory.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sku, err := h.service.UpdateSKUQuantity(c.Request.Context(), skuID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "SKU quantity updated successfully", sku)
}

func (h *SKUHandler) DeleteSKU(c *gin.Context) {
	skuID, err := uuid.Parse(c.Param("sku_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid SKU ID")
		return
	}

	if err := h.service.DeactivateSKU(c.Request.Context(), skuID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "SKU deactivated successfully", nil)
}
