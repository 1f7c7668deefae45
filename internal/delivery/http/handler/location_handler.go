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

type LocationHandler struct {
	service *inventory.Service
}

func NewLocationHandler(service *inventory.Service) *LocationHandler {
	return &LocationHandler{service: service}
}

func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	locations := router.Group("/locations")
	{
		locations.GET("", h.ListLocations)
		locations.GET("/:location_id", h.GetLocation)
		locations.POST("", middleware.MemberOnly(), h.CreateLocation)
		locations.PUT("/:location_id", middleware.MemberOnly(), h.UpdateLocation)
		locations.DELETE("/:location_id", middleware.MemberOnly(), h.DeleteLocation)
	}
}

func (h *LocationHandler) ListLocations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	includeInactive := c.Query("include_inactive") == "true"

	locations, err := h.service.ListLocations(c.Request.Context(), page, pageSize, includeInactive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Locations retrieved successfully", locations)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("location_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid location ID")
		return
	}

	location, err := h.service.GetLocation(c.Request.Context(), locationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Location retrieved successfully", location)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return
	}

	var req inventory.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	location, err := h.service.CreateLocation(c.Request.Context(), actor, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Location created successfully", location)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("location_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid location ID")
		return
	}

	var req inventory.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	location, err := h.service.UpdateLocation(c.Request.Context(), locationID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Location updated successfully", location)
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("location_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid location ID")
		return
	}

	if err := h.service.DeactivateLocation(c.Request.Context(), locationID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Location deactivated successfully", nil)
}
