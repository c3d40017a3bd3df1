package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanjeev1695/billing-software/internal/api/middleware"
	"github.com/Sanjeev1695/billing-software/internal/auth"
	"github.com/Sanjeev1695/billing-software/internal/config"
)

// AuthHandler handles operator login and token verification.
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if !auth.VerifyOperator(h.cfg, req.Username, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := auth.GenerateJWT(req.Username, h.cfg.JwtSecret, h.cfg.JwtTTL)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         gin.H{"username": req.Username},
	})
}

// Verify handles GET /api/auth/verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	username := c.GetString(middleware.ContextKeyUsername)
	c.JSON(http.StatusOK, gin.H{"user": username, "valid": true})
}
