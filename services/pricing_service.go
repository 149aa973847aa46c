package services

import (
	"errors"
	"fmt"
	"time"

	"guesthouse-backend/models"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// StayQuote คือผลการคำนวณราคาช่วงเข้าพักหนึ่งช่วง
type StayQuote struct {
	Nights      []models.NightRate `json:"nights"`
	Total       float64            `json:"total"`
	NightCount  int                `json:"night_count"`
	AverageRate float64            `json:"average_rate"` // สำหรับแสดงผลเท่านั้น ยอดเรียกเก็บใช้ Total
}

type PricingService struct {
	DB *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db}
}

// PriceStay คิดราคารายคืนช่วง [checkIn, checkOut) ของประเภทห้องที่ระบุ
// คืนละ base + (surcharge ? holidaySurcharge : 0)
// surcharge day = อยู่ในตาราง holidays หรือ (ตั้งค่า weekend_surcharge) ตรงกับ เสาร์/อาทิตย์
func (s *PricingService) PriceStay(checkIn, checkOut time.Time, category *models.RoomCategory) (*StayQuote, error) {
	checkIn = Midnight(checkIn)
	checkOut = Midnight(checkOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDates
	}

	weekendSurcharge := true
	var setting models.PropertySetting
	if err := s.DB.First(&setting).Error; err == nil {
		weekendSurcharge = setting.WeekendSurcharge
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load property setting: %w", err)
	}

	var holidays []models.Holiday
	if err := s.DB.
		Where("date >= ? AND date < ?", checkIn, checkOut).
		Find(&holidays).Error; err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[Midnight(h.Date).Format(dateLayout)] = true
	}

	quote := &StayQuote{}
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		surcharge := holidaySet[key]
		if !surcharge && weekendSurcharge {
			wd := d.Weekday()
			surcharge = wd == time.Saturday || wd == time.Sunday
		}

		price := category.BasePrice
		if surcharge {
			price += category.HolidaySurcharge
		}

		quote.Nights = append(quote.Nights, models.NightRate{
			Date:      key,
			Surcharge: surcharge,
			Price:     price,
		})
		quote.Total += price
		quote.NightCount++
	}

	quote.AverageRate = quote.Total / float64(quote.NightCount)
	return quote, nil
}

// Midnight ตัดเวลาออก เหลือเฉพาะวันที่ (ใช้ timezone เดิมของค่า)
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
