package scheduler

import (
	"testing"
	"time"

	"guesthouse-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hold period 3 วัน: จองเที่ยงคืนวันที่ 1 -> deadline เที่ยงคืนวันที่ 4
func TestSweepRespectsHoldPeriod(t *testing.T) {
	db := openTestDB(t)
	seedPolicy(t, db, models.KindPaymentReminder, 3, 10)
	cat := seedCategory(t, db)
	notifier := &fakeNotifier{}
	sweeper := newSweeper(db, notifier)

	booking := seedBooking(t, db, models.Booking{
		RoomCategoryID: cat.ID,
		CheckInDate:    day(2024, time.January, 10),
		CheckOutDate:   day(2024, time.January, 12),
		PaymentMethod:  models.MethodBankTransfer,
		Status:         models.StatusReserved,
		PaymentStatus:  models.PaymentPending,
		GuestEmail:     "late@example.com",
	})
	require.NoError(t, db.Model(&booking).Update("created_at", at(2024, time.January, 1, 0, 0)).Error)

	// ยังไม่ครบ 3 วันเต็ม: ห้ามแตะ
	n, err := sweeper.SweepOnce(at(2024, time.January, 3, 23, 59))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, notifier.count())

	// เลย deadline แล้ว: ยกเลิก + แจ้งหนึ่งฉบับ
	n, err = sweeper.SweepOnce(at(2024, time.January, 4, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, notifier.count())
	assert.Equal(t, "late@example.com", notifier.last().To)
	assert.Contains(t, notifier.last().Subject, "cancelled")

	var fresh models.Booking
	require.NoError(t, db.First(&fresh, booking.ID).Error)
	assert.Equal(t, models.StatusCancelled, fresh.Status)
	assert.Equal(t, models.PaymentPending, fresh.PaymentStatus)

	// รอบถัดไปไม่หยิบซ้ำ ไม่ส่งอีเมลซ้ำ
	n, err = sweeper.SweepOnce(at(2024, time.January, 5, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, notifier.count())
}

func TestSweepSkipsIneligibleBookings(t *testing.T) {
	db := openTestDB(t)
	seedPolicy(t, db, models.KindPaymentReminder, 3, 10)
	cat := seedCategory(t, db)
	notifier := &fakeNotifier{}
	sweeper := newSweeper(db, notifier)

	old := at(2024, time.January, 1, 0, 0)

	paid := seedBooking(t, db, models.Booking{
		RoomCategoryID: cat.ID,
		CheckInDate:    day(2024, time.January, 10),
		CheckOutDate:   day(2024, time.January, 12),
		PaymentMethod:  models.MethodBankTransfer,
		Status:         models.StatusActive,
		PaymentStatus:  models.PaymentPaid,
	})
	card := seedBooking(t, db, models.Booking{
		RoomCategoryID: cat.ID,
		CheckInDate:    day(2024, time.January, 15),
		CheckOutDate:   day(2024, time.January, 17),
		PaymentMethod:  models.MethodCard,
		Status:         models.StatusReserved,
		PaymentStatus:  models.PaymentPending,
	})
	require.NoError(t, db.Model(&paid).Update("created_at", old).Error)
	require.NoError(t, db.Model(&card).Update("created_at", old).Error)

	n, err := sweeper.SweepOnce(at(2024, time.January, 20, 2, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, notifier.count())
}

// อีเมลพลาดไม่ทำให้การยกเลิก rollback และไม่ยกเลิกซ้ำรอบหน้า
func TestSweepNotifyFailureStillCancels(t *testing.T) {
	db := openTestDB(t)
	seedPolicy(t, db, models.KindPaymentReminder, 3, 10)
	cat := seedCategory(t, db)
	notifier := &fakeNotifier{fail: true}
	sweeper := newSweeper(db, notifier)

	booking := seedBooking(t, db, models.Booking{
		RoomCategoryID: cat.ID,
		CheckInDate:    day(2024, time.January, 10),
		CheckOutDate:   day(2024, time.January, 12),
		PaymentMethod:  models.MethodBankTransfer,
		Status:         models.StatusReserved,
		PaymentStatus:  models.PaymentPending,
	})
	require.NoError(t, db.Model(&booking).Update("created_at", at(2024, time.January, 1, 0, 0)).Error)

	n, err := sweeper.SweepOnce(at(2024, time.January, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var fresh models.Booking
	require.NoError(t, db.First(&fresh, booking.ID).Error)
	assert.Equal(t, models.StatusCancelled, fresh.Status)

	notifier.fail = false
	n, err = sweeper.SweepOnce(at(2024, time.January, 6, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, notifier.count())
}

func TestSweepWithoutHoldPolicy(t *testing.T) {
	db := openTestDB(t)
	notifier := &fakeNotifier{}
	sweeper := newSweeper(db, notifier)

	_, err := sweeper.SweepOnce(at(2024, time.January, 5, 0, 0))
	assert.Error(t, err)
}
