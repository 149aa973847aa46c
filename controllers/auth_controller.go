package controllers

import (
	"net/http"
	"strings"
	"time"

	"guesthouse-backend/config"
	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func sessionTTL() time.Duration {
	return time.Duration(utils.EnvInt("ADMIN_SESSION_TTL_HOURS", 12)) * time.Hour
}

func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "username and password required"}})
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ?", strings.TrimSpace(payload.Username)).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "error.invalidCredentials", "message": "invalid credentials"}})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "error.invalidCredentials", "message": "invalid credentials"}})
		return
	}

	token, err := utils.GenerateSecureToken(24)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to create session"}})
		return
	}
	session := models.AdminSession{
		AdminID:   admin.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(sessionTTL()),
	}
	if err := config.DB.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to create session"}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"admin":      gin.H{"id": admin.ID, "full_name": admin.FullName, "username": admin.Username},
	})
}

func Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token != "" {
		config.DB.Where("token = ?", token).Delete(&models.AdminSession{})
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
