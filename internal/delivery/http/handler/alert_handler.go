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

type AlertHandler struct {
	service *inventory.Service
}

func NewAlertHandler(service *inventory.Service) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	alerts := router.Group("/alerts")
	{
		alerts.GET("", h.ListAlerts)
		alerts.POST("", middleware.MemberOnly(), h.CreateAlert)
		alerts.POST("/:alert_id/acknowledge", middleware.MemberOnly(), h.AcknowledgeAlert)
	}
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	alerts, err := h.service.ListActiveAlerts(c.Request.Context(), page, pageSize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alerts retrieved successfully", alerts)
}

func (h *AlertHandler) CreateAlert(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return
	}

	var req inventory.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	alert, err := h.service.CreateAlert(c.Request.Context(), actor, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Alert created successfully", alert)
}

func (h *AlertHandler) AcknowledgeAlert(c *gin.Context) {
	alertID, err := uuid.Parse(c.Param("alert_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid alert ID")
		return
	}

	alert, err := h.service.AcknowledgeAlert(c.Request.Context(), alertID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert acknowledged successfully", alert)
}
