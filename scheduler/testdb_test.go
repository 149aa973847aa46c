package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"guesthouse-backend/models"
	"guesthouse-backend/services"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func seedPolicy(t *testing.T, db *gorm.DB, kind models.NotificationKind, offsetDays, dispatchHour int) models.NotificationPolicy {
	t.Helper()
	policy := models.NotificationPolicy{
		Kind:         kind,
		Enabled:      true,
		OffsetDays:   offsetDays,
		DispatchHour: dispatchHour,
	}
	require.NoError(t, db.Create(&policy).Error)
	return policy
}

func seedCategory(t *testing.T, db *gorm.DB) models.RoomCategory {
	t.Helper()
	cat := models.RoomCategory{Name: "standard", BasePrice: 2000, HolidaySurcharge: 500, Units: 1, Active: true}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

var testRefSeq int

// seedBooking insert ตรงๆ ข้าม service layer เพื่อคุม created_at / สถานะได้อิสระ
func seedBooking(t *testing.T, db *gorm.DB, b models.Booking) models.Booking {
	t.Helper()
	testRefSeq++
	if b.Reference == "" {
		b.Reference = fmt.Sprintf("GHTEST%05d", testRefSeq)
	}
	if b.GuestName == "" {
		b.GuestName = "Guest"
	}
	if b.GuestEmail == "" {
		b.GuestEmail = "guest@example.com"
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeNotifier เก็บอีเมลที่ส่งไว้ตรวจ และสั่งให้ล้มเหลวได้
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (f *fakeNotifier) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeNotifier) last() sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

func newSweeper(db *gorm.DB, notifier Notifier) *ExpirationSweeper {
	pricing := services.NewPricingService(db)
	availability := services.NewAvailabilityService(db)
	bookings := services.NewBookingService(db, pricing, availability)
	return NewExpirationSweeper(db, bookings, notifier)
}
