package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocky-backend/internal/domain/backup"
	"stocky-backend/internal/middleware"
	"stocky-backend/pkg/utils"
)

type BackupHandler struct {
	service backup.Service
}

func NewBackupHandler(service backup.Service) *BackupHandler {
	return &BackupHandler{service: service}
}

func (h *BackupHandler) RegisterRoutes(router *gin.RouterGroup) {
	backups := router.Group("/backup", middleware.AdminOnly())
	{
		backups.POST("", h.CreateBackup)
		backups.GET("", h.ListBackups)
		backups.GET("/:name", h.DownloadBackup)
	}
}

func (h *BackupHandler) CreateBackup(c *gin.Context) {
	snapshot, err := h.service.Create(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Backup created successfully", snapshot)
}

func (h *BackupHandler) ListBackups(c *gin.Context) {
	snapshots, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Backups retrieved successfully", snapshots)
}

func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	snapshot, err := h.service.Open(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Backup not found")
		return
	}

	c.FileAttachment(snapshot.Path, snapshot.Name)
}
