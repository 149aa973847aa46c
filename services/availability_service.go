package services

import (
	"errors"
	"fmt"
	"time"

	"guesthouse-backend/models"

	"gorm.io/gorm"
)

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// overlappingCount นับ booking ที่ยังไม่ถูกยกเลิกและช่วงวันทับซ้อนแบบ half-open:
// existing.check_in < cand.check_out AND existing.check_out > cand.check_in
// (check-out วันเดียวกับ check-in ของอีก booking = ไม่ชน, เข้าพักต่อกันได้)
func (s *AvailabilityService) overlappingCount(tx *gorm.DB, checkIn, checkOut time.Time, categoryID uint, excludeBookingID uint) (int64, error) {
	q := tx.Model(&models.Booking{}).
		Where("room_category_id = ?", categoryID).
		Where("status IN ?", []models.BookingStatus{models.StatusReserved, models.StatusActive}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return count, nil
}

// IsAvailable ตรวจว่าประเภทห้องยังว่างในช่วง [checkIn, checkOut) หรือไม่
// excludeBookingID ใช้ตอนแก้ไขวันที่ของ booking เดิม (ไม่นับตัวเอง)
func (s *AvailabilityService) IsAvailable(checkIn, checkOut time.Time, categoryID uint, excludeBookingID uint) (bool, error) {
	return s.isAvailableTx(s.DB, checkIn, checkOut, categoryID, excludeBookingID)
}

func (s *AvailabilityService) isAvailableTx(tx *gorm.DB, checkIn, checkOut time.Time, categoryID uint, excludeBookingID uint) (bool, error) {
	checkIn = Midnight(checkIn)
	checkOut = Midnight(checkOut)
	if !checkOut.After(checkIn) {
		return false, ErrInvalidDates
	}

	var category models.RoomCategory
	if err := tx.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrCategoryNotFound
		}
		return false, fmt.Errorf("failed to load category: %w", err)
	}

	units := category.Units
	if units <= 0 {
		units = 1
	}

	count, err := s.overlappingCount(tx, checkIn, checkOut, categoryID, excludeBookingID)
	if err != nil {
		return false, err
	}
	return count < int64(units), nil
}

// UnavailableCategories คืน set ของ category id ที่เต็มในช่วงที่ขอ
func (s *AvailabilityService) UnavailableCategories(checkIn, checkOut time.Time) (map[uint]bool, error) {
	checkIn = Midnight(checkIn)
	checkOut = Midnight(checkOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDates
	}

	var categories []models.RoomCategory
	if err := s.DB.Where("active = ?", true).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	unavailable := map[uint]bool{}
	for _, cat := range categories {
		units := cat.Units
		if units <= 0 {
			units = 1
		}
		count, err := s.overlappingCount(s.DB, checkIn, checkOut, cat.ID, 0)
		if err != nil {
			return nil, err
		}
		if count >= int64(units) {
			unavailable[cat.ID] = true
		}
	}
	return unavailable, nil
}
