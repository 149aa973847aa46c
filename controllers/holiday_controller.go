package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"guesthouse-backend/config"
	"guesthouse-backend/models"

	"github.com/gin-gonic/gin"
)

func GetHolidays(c *gin.Context) {
	var holidays []models.Holiday
	q := config.DB.Order("date ASC")
	if year := strings.TrimSpace(c.Query("year")); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidYear", "message": "year must be numeric"}})
			return
		}
		from := time.Date(y, 1, 1, 0, 0, 0, 0, time.Local)
		q = q.Where("date >= ? AND date < ?", from, from.AddDate(1, 0, 0))
	}
	if err := q.Find(&holidays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to load holidays"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": holidays})
}

type holidayPayload struct {
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Label string `json:"label"`
}

func CreateHoliday(c *gin.Context) {
	var payload holidayPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": err.Error()}})
		return
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(payload.Date))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidDate", "message": "date must be YYYY-MM-DD"}})
		return
	}

	holiday := models.Holiday{Date: date, Label: payload.Label}
	if err := config.DB.Create(&holiday).Error; err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.duplicateDate", "message": "holiday already exists"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to create holiday"}})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": holiday})
}

func DeleteHoliday(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidId", "message": "id must be numeric"}})
		return
	}
	res := config.DB.Delete(&models.Holiday{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "failed to delete holiday"}})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.notFound", "message": "holiday not found"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
