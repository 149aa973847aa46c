package controllers

import (
	"net/http"

	"guesthouse-backend/config"
	"guesthouse-backend/models"

	"github.com/gin-gonic/gin"
)

func GetNotificationPolicies(c *gin.Context) {
	var policies []models.NotificationPolicy
	if err := config.DB.Order("id ASC").Find(&policies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to load policies"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": policies})
}

type policyPayload struct {
	Enabled      *bool `json:"enabled"`
	OffsetDays   *int  `json:"offset_days"`
	DispatchHour *int  `json:"dispatch_hour"`
}

// UpdateNotificationPolicy - แก้ policy ต่อ kind (kind สร้างจาก seed เท่านั้น เพิ่มใหม่ไม่ได้)
func UpdateNotificationPolicy(c *gin.Context) {
	kind := models.NotificationKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidKind", "message": "unknown notification kind"}})
		return
	}

	var payload policyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": err.Error()}})
		return
	}

	updates := map[string]interface{}{}
	if payload.Enabled != nil {
		updates["enabled"] = *payload.Enabled
	}
	if payload.OffsetDays != nil {
		if *payload.OffsetDays < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidOffset", "message": "offset_days must be >= 0"}})
			return
		}
		updates["offset_days"] = *payload.OffsetDays
	}
	if payload.DispatchHour != nil {
		if *payload.DispatchHour < 0 || *payload.DispatchHour > 23 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidHour", "message": "dispatch_hour must be 0-23"}})
			return
		}
		updates["dispatch_hour"] = *payload.DispatchHour
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "nothing to update"}})
		return
	}

	var policy models.NotificationPolicy
	if err := config.DB.Where("kind = ?", kind).First(&policy).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.notFound", "message": "policy not found"}})
		return
	}
	if err := config.DB.Model(&policy).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to update policy"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": policy})
}
