package middleware

import (
	"net/http"
	"strings"
	"time"

	"guesthouse-backend/config"
	"guesthouse-backend/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin ตรวจ Bearer token กับ admin_sessions ใน DB (ต้องยังไม่หมดอายุ)
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.unauthorized", "message": "missing bearer token"},
			})
			return
		}

		var session models.AdminSession
		err := config.DB.
			Where("token = ? AND expires_at > ?", token, time.Now()).
			First(&session).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.unauthorized", "message": "invalid or expired session"},
			})
			return
		}

		c.Set("adminId", session.AdminID)
		c.Next()
	}
}
