package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocky-backend/internal/middleware"
	"stocky-backend/internal/usecase/scanner"
	"stocky-backend/pkg/utils"
)

type ScannerHandler struct {
	service *scanner.Service
}

func NewScannerHandler(service *scanner.Service) *ScannerHandler {
	return &ScannerHandler{service: service}
}

// RegisterScanRoute wires the scan endpoint, which accepts optional identity
// so unattended scanner hardware can post with an API key or anonymously.
func (h *ScannerHandler) RegisterScanRoute(router *gin.RouterGroup) {
	router.POST("/scanner/scan", h.Scan)
}

func (h *ScannerHandler) RegisterRoutes(router *gin.RouterGroup) {
	scannerGroup := router.Group("/scanner")
	{
		scannerGroup.POST("/lookup/:upc", h.Lookup)
		scannerGroup.GET("/status/:scanner_id", h.Status)
		scannerGroup.POST("/associate", h.Associate)
		scannerGroup.DELETE("/associate/:scanner_id", h.Disassociate)
		scannerGroup.GET("/associations", middleware.AdminOnly(), h.ListAssociations)
	}
}

func (h *ScannerHandler) Scan(c *gin.Context) {
	var req scanner.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Anonymous scans are allowed; identity only enriches the log.
	actor, _ := middleware.CurrentUser(c)

	resp, err := h.service.Scan(c.Request.Context(), actor, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, resp.Message, resp)
}

func (h *ScannerHandler) Lookup(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	resp, err := h.service.Lookup(c.Request.Context(), actor, c.Param("upc"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, resp.Message, resp)
}

func (h *ScannerHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.Param("scanner_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scanner status retrieved", status)
}

func (h *ScannerHandler) Associate(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req scanner.AssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	association, err := h.service.Associate(c.Request.Context(), actor, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scanner associated successfully", association)
}

func (h *ScannerHandler) Disassociate(c *gin.Context) {
	if err := h.service.Disassociate(c.Request.Context(), c.Param("scanner_id")); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scanner disassociated successfully", nil)
}

func (h *ScannerHandler) ListAssociations(c *gin.Context) {
	associations, err := h.service.ListAssociations(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scanner associations retrieved", associations)
}
