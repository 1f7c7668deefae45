package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stocky-backend/internal/logger"
	"stocky-backend/internal/middleware"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

// respondWithError translates domain errors into HTTP status codes. This is
// the single place the error taxonomy meets the wire.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists),
		errors.Is(err, appErrors.ErrUPCAlreadyExists),
		errors.Is(err, appErrors.ErrSKUAlreadyExists),
		errors.Is(err, appErrors.ErrListItemAlreadyAdded):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrMissingToken),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrAccountInactive):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrForbidden):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, appErrors.ErrItemNotFound),
		errors.Is(err, appErrors.ErrLocationNotFound),
		errors.Is(err, appErrors.ErrSKUNotFound),
		errors.Is(err, appErrors.ErrAlertNotFound),
		errors.Is(err, appErrors.ErrListNotFound),
		errors.Is(err, appErrors.ErrListItemNotFound),
		errors.Is(err, appErrors.ErrScannerNotAssociated):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
