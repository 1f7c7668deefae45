package auth

import (
	"github.com/google/uuid"
)

type LoginRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=1"`
	RememberMe bool   `json:"remember_me"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	UserID       uuid.UUID `json:"user_id"`
	Role         string    `json:"role"`
}

type APIKeyResponse struct {
	Message string `json:"message"`
	APIKey  string `json:"api_key"`
	Note    string `json:"note"`
}
