package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/middleware"
	"stocky-backend/internal/usecase/user"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

type UserHandler struct {
	service *user.Service
}

func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", middleware.AdminOnly(), h.ListUsers)
		users.POST("", middleware.AdminOnly(), h.CreateUser)
		users.GET("/:user_id", h.GetUser)
		users.PUT("/:user_id", h.UpdateUser)
		users.DELETE("/:user_id", middleware.AdminOnly(), h.DeleteUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, err := h.service.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User created successfully", created)
}

// GetUser returns a profile: admins can read anyone, others only themselves.
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, targetID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	if actor.Role != domainUser.RoleAdmin && actor.ID != targetID {
		utils.ErrorResponse(c, http.StatusForbidden, appErrors.ErrForbidden.Error())
		return
	}

	profile, err := h.service.GetUser(c.Request.Context(), targetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", profile)
}

// UpdateUser patches a profile: admins can update anyone, others only
// themselves. Role changes are enforced admin-only in the service.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, targetID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	if actor.Role != domainUser.RoleAdmin && actor.ID != targetID {
		utils.ErrorResponse(c, http.StatusForbidden, appErrors.ErrForbidden.Error())
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateUser(c.Request.Context(), actor, targetID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", updated)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, targetID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	if err := h.service.DeactivateUser(c.Request.Context(), actor, targetID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User deactivated successfully", nil)
}

func (h *UserHandler) resolveTarget(c *gin.Context) (*domainUser.User, uuid.UUID, bool) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return nil, uuid.Nil, false
	}

	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return nil, uuid.Nil, false
	}

	return actor, targetID, true
}
