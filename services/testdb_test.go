package services

import (
	"testing"
	"time"

	"guesthouse-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB เปิด sqlite in-memory หนึ่งลูกต่อหนึ่ง test
// จำกัด connection เดียว ไม่งั้น pool จะได้คนละ in-memory database
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.PropertySetting{},
		&models.RoomCategory{},
		&models.Holiday{},
		&models.NotificationPolicy{},
		&models.Booking{},
		&models.PaymentTransaction{},
	))
	return db
}

func seedSetting(t *testing.T, db *gorm.DB, weekendSurcharge bool, depositPercent int) {
	t.Helper()
	require.NoError(t, db.Create(&models.PropertySetting{
		Name:             "Test Guesthouse",
		CurrencyCode:     "THB",
		WeekendSurcharge: weekendSurcharge,
		DepositPercent:   depositPercent,
	}).Error)
}

func seedCategory(t *testing.T, db *gorm.DB, name string, base, surcharge float64, units int) models.RoomCategory {
	t.Helper()
	cat := models.RoomCategory{
		Name:             name,
		DisplayName:      name,
		BasePrice:        base,
		HolidaySurcharge: surcharge,
		Units:            units,
		Active:           true,
	}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBookingService(db *gorm.DB) *BookingService {
	pricing := NewPricingService(db)
	availability := NewAvailabilityService(db)
	return NewBookingService(db, pricing, availability)
}
