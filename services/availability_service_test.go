package services

import (
	"fmt"
	"testing"
	"time"

	"guesthouse-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func insertBooking(t *testing.T, db *gorm.DB, categoryID uint, checkIn, checkOut time.Time, status models.BookingStatus) models.Booking {
	t.Helper()
	b := models.Booking{
		Reference:      fmt.Sprintf("GHTEST%05d", time.Now().UnixNano()%100000),
		RoomCategoryID: categoryID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		Nights:         int(checkOut.Sub(checkIn).Hours() / 24),
		GuestName:      "Guest",
		GuestEmail:     "guest@example.com",
		Adults:         2,
		PaymentMethod:  models.MethodBankTransfer,
		Status:         status,
		PaymentStatus:  models.PaymentPending,
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func TestIsAvailableHalfOpenOverlap(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := NewAvailabilityService(db)

	insertBooking(t, db, cat.ID, day(2024, time.March, 10), day(2024, time.March, 13), models.StatusReserved)

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"inside existing stay", day(2024, time.March, 11), day(2024, time.March, 12), false},
		{"overlaps tail", day(2024, time.March, 12), day(2024, time.March, 14), false},
		{"overlaps head", day(2024, time.March, 9), day(2024, time.March, 11), false},
		{"same range", day(2024, time.March, 10), day(2024, time.March, 13), false},
		{"back to back after checkout", day(2024, time.March, 13), day(2024, time.March, 15), true},
		{"ends on existing check-in", day(2024, time.March, 8), day(2024, time.March, 10), true},
		{"fully before", day(2024, time.March, 1), day(2024, time.March, 5), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.IsAvailable(tc.checkIn, tc.checkOut, cat.ID, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestIsAvailableIgnoresCancelled(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := NewAvailabilityService(db)

	insertBooking(t, db, cat.ID, day(2024, time.March, 10), day(2024, time.March, 13), models.StatusCancelled)

	ok, err := svc.IsAvailable(day(2024, time.March, 10), day(2024, time.March, 13), cat.ID, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailableMultipleUnits(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db, "superior", 2800, 600, 2)
	svc := NewAvailabilityService(db)

	insertBooking(t, db, cat.ID, day(2024, time.March, 10), day(2024, time.March, 13), models.StatusActive)

	// ยังเหลืออีกหนึ่งห้อง
	ok, err := svc.IsAvailable(day(2024, time.March, 10), day(2024, time.March, 13), cat.ID, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	insertBooking(t, db, cat.ID, day(2024, time.March, 11), day(2024, time.March, 12), models.StatusReserved)

	ok, err = svc.IsAvailable(day(2024, time.March, 10), day(2024, time.March, 13), cat.ID, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailableExcludesOwnBooking(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := NewAvailabilityService(db)

	own := insertBooking(t, db, cat.ID, day(2024, time.March, 10), day(2024, time.March, 13), models.StatusReserved)

	// ขยายวันของ booking เดิม ไม่ควรชนกับตัวเอง
	ok, err := svc.IsAvailable(day(2024, time.March, 10), day(2024, time.March, 14), cat.ID, own.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailableUnknownCategory(t *testing.T) {
	db := openTestDB(t)
	svc := NewAvailabilityService(db)

	_, err := svc.IsAvailable(day(2024, time.March, 10), day(2024, time.March, 13), 999, 0)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUnavailableCategories(t *testing.T) {
	db := openTestDB(t)
	full := seedCategory(t, db, "standard", 2000, 500, 1)
	free := seedCategory(t, db, "deluxe", 3500, 800, 1)
	svc := NewAvailabilityService(db)

	insertBooking(t, db, full.ID, day(2024, time.March, 10), day(2024, time.March, 13), models.StatusReserved)

	unavailable, err := svc.UnavailableCategories(day(2024, time.March, 11), day(2024, time.March, 12))
	require.NoError(t, err)
	assert.True(t, unavailable[full.ID])
	assert.False(t, unavailable[free.ID])
}
