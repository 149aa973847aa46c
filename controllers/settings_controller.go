package controllers

import (
	"net/http"

	"guesthouse-backend/config"
	"guesthouse-backend/models"

	"github.com/gin-gonic/gin"
)

func GetPropertySettings(c *gin.Context) {
	var setting models.PropertySetting
	if err := config.DB.First(&setting).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.notFound", "message": "settings not found"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": setting})
}

type settingsPayload struct {
	Name             *string `json:"name"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	CurrencyCode     *string `json:"currency_code"`
	WeekendSurcharge *bool   `json:"weekend_surcharge"`
	DepositPercent   *int    `json:"deposit_percent"`
}

func UpdatePropertySettings(c *gin.Context) {
	var payload settingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": err.Error()}})
		return
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Address != nil {
		updates["address"] = *payload.Address
	}
	if payload.Phone != nil {
		updates["phone"] = *payload.Phone
	}
	if payload.Email != nil {
		updates["email"] = *payload.Email
	}
	if payload.CurrencyCode != nil {
		updates["currency_code"] = *payload.CurrencyCode
	}
	if payload.WeekendSurcharge != nil {
		updates["weekend_surcharge"] = *payload.WeekendSurcharge
	}
	if payload.DepositPercent != nil {
		if *payload.DepositPercent <= 0 || *payload.DepositPercent > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidDeposit", "message": "deposit_percent must be 1-100"}})
			return
		}
		updates["deposit_percent"] = *payload.DepositPercent
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "nothing to update"}})
		return
	}

	var setting models.PropertySetting
	if err := config.DB.First(&setting).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.notFound", "message": "settings not found"}})
		return
	}
	if err := config.DB.Model(&setting).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to update settings"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": setting})
}
