package controllers

import (
	"net/http"
	"strconv"

	"guesthouse-backend/config"
	"guesthouse-backend/models"

	"github.com/gin-gonic/gin"
)

func GetRoomCategories(c *gin.Context) {
	var categories []models.RoomCategory
	q := config.DB.Order("display_order ASC")
	if c.Query("include_inactive") != "true" {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to load categories"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

type roomCategoryPayload struct {
	Name             string  `json:"name" binding:"required"`
	DisplayName      string  `json:"display_name"`
	BasePrice        float64 `json:"base_price" binding:"required"`
	HolidaySurcharge float64 `json:"holiday_surcharge"`
	Units            int     `json:"units"`
	DisplayOrder     int     `json:"display_order"`
}

func CreateRoomCategory(c *gin.Context) {
	var payload roomCategoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": err.Error()}})
		return
	}
	units := payload.Units
	if units <= 0 {
		units = 1
	}
	category := models.RoomCategory{
		Name:             payload.Name,
		DisplayName:      payload.DisplayName,
		BasePrice:        payload.BasePrice,
		HolidaySurcharge: payload.HolidaySurcharge,
		Units:            units,
		Active:           true,
		DisplayOrder:     payload.DisplayOrder,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to create category"}})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": category})
}

func UpdateRoomCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidId", "message": "id must be numeric"}})
		return
	}

	var category models.RoomCategory
	if err := config.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.notFound", "message": "category not found"}})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": err.Error()}})
		return
	}
	// จำกัด field ที่แก้ได้
	allowed := map[string]bool{
		"display_name": true, "base_price": true, "holiday_surcharge": true,
		"units": true, "active": true, "display_order": true,
	}
	filtered := map[string]interface{}{}
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "no editable fields"}})
		return
	}

	if err := config.DB.Model(&category).Updates(filtered).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to update category"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

// DeactivateRoomCategory - soft-deactivate เท่านั้น (ยังมี booking อ้างอยู่ได้)
func DeactivateRoomCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidId", "message": "id must be numeric"}})
		return
	}
	res := config.DB.Model(&models.RoomCategory{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to deactivate category"}})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.notFound", "message": "category not found"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
