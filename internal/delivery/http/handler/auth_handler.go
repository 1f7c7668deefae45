package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocky-backend/internal/config"
	"stocky-backend/internal/middleware"
	"stocky-backend/internal/usecase/auth"
	userUsecase "stocky-backend/internal/usecase/user"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

type AuthHandler struct {
	service   *auth.Service
	cookieCfg config.CookieConfig
}

func NewAuthHandler(service *auth.Service, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{service: service, cookieCfg: cookieCfg}
}

func (h *AuthHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/login-json", h.LoginJSON)
	}
}

func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", h.Me)
		authGroup.POST("/generate-api-key", h.GenerateAPIKey)
		authGroup.DELETE("/revoke-api-key", h.RevokeAPIKey)
	}
}

// Login authenticates with form fields, the OAuth2 password-flow shape.
func (h *AuthHandler) Login(c *gin.Context) {
	req := &auth.LoginRequest{
		Username:   c.PostForm("username"),
		Password:   c.PostForm("password"),
		RememberMe: c.PostForm("remember_me") == "true",
	}

	h.login(c, req)
}

// LoginJSON authenticates with a JSON body.
func (h *AuthHandler) LoginJSON(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.login(c, &req)
}

func (h *AuthHandler) login(c *gin.Context, req *auth.LoginRequest) {
	tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if req.RememberMe {
		h.setRefreshCookie(c, tokens.RefreshToken, int(h.service.RefreshTokenTTL(true).Seconds()))
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", tokens)
}

// Refresh issues a new token pair for the already authenticated caller. When
// a refresh cookie accompanied the request the new refresh token replaces it.
func (h *AuthHandler) Refresh(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return
	}

	cookie, err := c.Cookie(h.cookieCfg.Name)
	persistent := err == nil && cookie != ""

	tokens, err := h.service.Refresh(c.Request.Context(), user, persistent)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if persistent {
		h.setRefreshCookie(c, tokens.RefreshToken, int(h.service.RefreshTokenTTL(true).Seconds()))
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", tokens)
}

// Logout clears the refresh cookie. Tokens are stateless, so there is nothing
// else to revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return
	}

	h.setRefreshCookie(c, "", -1)

	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("User %s logged out successfully", user.Username), nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Current user retrieved", userUsecase.ToUserResponse(user))
}

func (h *AuthHandler) GenerateAPIKey(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return
	}

	resp, err := h.service.GenerateAPIKey(c.Request.Context(), user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, resp.Message, resp)
}

func (h *AuthHandler) RevokeAPIKey(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
		return
	}

	if err := h.service.RevokeAPIKey(c.Request.Context(), user); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "API key revoked successfully", nil)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieCfg.Name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookieCfg.Domain,
		MaxAge:   maxAge,
		Secure:   h.cookieCfg.Secure,
		HttpOnly: true,
		SameSite: sameSiteMode(h.cookieCfg.SameSite),
	})
}

func sameSiteMode(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
