package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-task-manager/backend/internal/services"
)

// AuthHandler はトークン発行のハンドラーを管理します。
type AuthHandler struct {
	authService *services.AuthService
	jwtService  *services.JWTService
}

// NewAuthHandler は新しいAuthHandlerを作成します。
func NewAuthHandler(authService *services.AuthService, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{authService: authService, jwtService: jwtService}
}

// TokenHandler はAPIキーと引き換えにJWTトークンを発行します。
func (h *AuthHandler) TokenHandler(c *gin.Context) {
	var req struct {
		APIKey string `json:"api_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.authService.VerifyAPIKey(req.APIKey); err != nil {
		if errors.Is(err, services.ErrInvalidAPIKey) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify API key"})
		return
	}

	token, err := h.jwtService.GenerateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
