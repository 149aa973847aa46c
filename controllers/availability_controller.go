package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"guesthouse-backend/models"
	"guesthouse-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AvailabilityController struct {
	Availability *services.AvailabilityService
	Pricing      *services.PricingService
	DB           *gorm.DB
}

func NewAvailabilityController(availability *services.AvailabilityService, pricing *services.PricingService, db *gorm.DB) *AvailabilityController {
	return &AvailabilityController{Availability: availability, Pricing: pricing, DB: db}
}

func parseDateQuery(c *gin.Context) (time.Time, time.Time, bool) {
	ci, err1 := time.Parse("2006-01-02", strings.TrimSpace(c.Query("check_in")))
	co, err2 := time.Parse("2006-01-02", strings.TrimSpace(c.Query("check_out")))
	if err1 != nil || err2 != nil || !co.After(ci) {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalid_dates",
			"message": "check_in/check_out must be YYYY-MM-DD and check_out after check_in",
		}})
		return time.Time{}, time.Time{}, false
	}
	return ci, co, true
}

// CheckAvailability - GET /api/availability?check_in=...&check_out=...
// ตอบ availability รายประเภทห้อง (เฉพาะที่ active)
func (ctrl *AvailabilityController) CheckAvailability(c *gin.Context) {
	ci, co, ok := parseDateQuery(c)
	if !ok {
		return
	}

	unavailable, err := ctrl.Availability.UnavailableCategories(ci, co)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var categories []models.RoomCategory
	if err := ctrl.DB.Where("active = ?", true).Order("display_order ASC").Find(&categories).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	type categoryAvailability struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Available   bool   `json:"available"`
	}
	out := make([]categoryAvailability, 0, len(categories))
	for _, cat := range categories {
		out = append(out, categoryAvailability{
			ID:          cat.ID,
			Name:        cat.Name,
			DisplayName: cat.DisplayName,
			Available:   !unavailable[cat.ID],
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// CalculatePrice - GET /api/price?check_in=...&check_out=...&category=standard
func (ctrl *AvailabilityController) CalculatePrice(c *gin.Context) {
	ci, co, ok := parseDateQuery(c)
	if !ok {
		return
	}

	name := strings.TrimSpace(c.Query("category"))
	var category models.RoomCategory
	if err := ctrl.DB.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondServiceError(c, services.ErrCategoryNotFound)
			return
		}
		respondServiceError(c, err)
		return
	}

	quote, err := ctrl.Pricing.PriceStay(ci, co, &category)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": quote})
}
