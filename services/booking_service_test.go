package services

import (
	"testing"
	"time"

	"guesthouse-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlineInput(categoryID uint) CreateBookingInput {
	return CreateBookingInput{
		CheckIn:        "2024-03-11",
		CheckOut:       "2024-03-13",
		RoomCategoryID: categoryID,
		GuestName:      "Somsri T.",
		GuestPhone:     "0812345678",
		GuestEmail:     "somsri@example.com",
		Adults:         2,
		PaymentMethod:  models.MethodBankTransfer,
	}
}

func TestCreateOnlineBooking(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	// จันทร์ 11 -> พุธ 13 มีนา 2024: สองคืนธรรมดา
	booking, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.Reference)
	assert.Equal(t, models.StatusReserved, booking.Status)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
	assert.Equal(t, 2, booking.Nights)
	assert.Equal(t, 4000.0, booking.TotalAmount)
	assert.Equal(t, 4000.0, booking.DueAmount)
	assert.False(t, booking.NotificationsOptOut)
	assert.NotEmpty(t, booking.RateNights)
}

func TestCreateDepositBooking(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	input := onlineInput(cat.ID)
	input.Deposit = true
	booking, err := svc.Create(input, nil)
	require.NoError(t, err)

	assert.Equal(t, 4000.0, booking.TotalAmount)
	assert.Equal(t, 2000.0, booking.DueAmount)
}

func TestCreateWithAddOns(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	input := onlineInput(cat.ID)
	input.AddOns = []models.AddOn{
		{Name: "breakfast", UnitPrice: 150, Quantity: 4},
		{Name: "airport pickup", UnitPrice: 500},
	}
	booking, err := svc.Create(input, nil)
	require.NoError(t, err)

	// 4000 ค่าห้อง + 600 อาหารเช้า + 500 รถรับ (qty ว่าง = 1)
	assert.Equal(t, 5100.0, booking.TotalAmount)
	assert.NotEmpty(t, booking.AddOns)
}

func TestCreateValidation(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	inactive := seedCategory(t, db, "closed-wing", 1500, 300, 1)
	require.NoError(t, db.Model(&inactive).Update("active", false).Error)
	svc := newBookingService(db)

	t.Run("checkout before checkin", func(t *testing.T) {
		input := onlineInput(cat.ID)
		input.CheckIn, input.CheckOut = input.CheckOut, input.CheckIn
		_, err := svc.Create(input, nil)
		assert.ErrorIs(t, err, ErrInvalidDates)
	})

	t.Run("zero nights", func(t *testing.T) {
		input := onlineInput(cat.ID)
		input.CheckOut = input.CheckIn
		_, err := svc.Create(input, nil)
		assert.ErrorIs(t, err, ErrInvalidDates)
	})

	t.Run("missing email", func(t *testing.T) {
		input := onlineInput(cat.ID)
		input.GuestEmail = "  "
		_, err := svc.Create(input, nil)
		assert.ErrorIs(t, err, ErrMissingContact)
	})

	t.Run("invalid payment method", func(t *testing.T) {
		input := onlineInput(cat.ID)
		input.PaymentMethod = "crypto"
		_, err := svc.Create(input, nil)
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})

	t.Run("negative children", func(t *testing.T) {
		input := onlineInput(cat.ID)
		input.Children = -1
		_, err := svc.Create(input, nil)
		assert.ErrorIs(t, err, ErrInvalidOccupancy)
	})

	t.Run("unknown category", func(t *testing.T) {
		input := onlineInput(999)
		_, err := svc.Create(input, nil)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("inactive category", func(t *testing.T) {
		input := onlineInput(inactive.ID)
		_, err := svc.Create(input, nil)
		assert.ErrorIs(t, err, ErrCategoryInactive)
	})
}

// สอง request ช่วงวันทับกันบนห้องเดียว: อันแรกได้ อันสองชน
func TestCreateSequentialConflict(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	first, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)
	require.Equal(t, models.StatusReserved, first.Status)

	_, err = svc.Create(onlineInput(cat.ID), nil)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// check-in วันเดียวกับ check-out ของอันแรก = ไม่ชน
	backToBack := onlineInput(cat.ID)
	backToBack.CheckIn = "2024-03-13"
	backToBack.CheckOut = "2024-03-15"
	_, err = svc.Create(backToBack, nil)
	assert.NoError(t, err)
}

func TestCreateManualPaidPromotesToActive(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	booking, err := svc.Create(onlineInput(cat.ID), &ManualState{
		Status:        models.StatusReserved,
		PaymentStatus: models.PaymentPaid,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusActive, booking.Status)
	assert.Equal(t, models.PaymentPaid, booking.PaymentStatus)
	assert.True(t, booking.NotificationsOptOut)
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	booking, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)

	confirmed, err := svc.ConfirmPayment(booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, confirmed.Status)
	assert.Equal(t, models.PaymentPaid, confirmed.PaymentStatus)

	// เรียกซ้ำ: no-op ไม่ error สถานะคงเดิม
	again, err := svc.ConfirmPayment(booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, again.Status)
	assert.Equal(t, models.PaymentPaid, again.PaymentStatus)
}

func TestConfirmPaymentOnCancelledKeepsCancelled(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	booking, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)
	_, err = svc.Cancel(booking.Reference)
	require.NoError(t, err)

	// เงินเข้าหลังยกเลิก: บันทึกว่าจ่ายแล้ว แต่ status ไม่ฟื้น
	confirmed, err := svc.ConfirmPayment(booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, confirmed.Status)
	assert.Equal(t, models.PaymentPaid, confirmed.PaymentStatus)
}

func TestCancelIsTerminal(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	booking, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, models.PaymentPending, cancelled.PaymentStatus)

	_, err = svc.Cancel(booking.Reference)
	assert.ErrorIs(t, err, ErrBookingAlreadyCancelled)
}

// ยกเลิกแล้วมีคนจองช่วงวันเดิมไปแล้ว: revive booking เก่าผ่าน edit ต้องถูกปัด
// ไม่งั้นได้ booking ไม่-cancelled สองอันทับช่วงวันกันบนห้องเดียว
func TestEditCannotReviveCancelledBooking(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	first, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)
	_, err = svc.Cancel(first.Reference)
	require.NoError(t, err)

	// ช่องว่างถูกจองต่อทันที
	second, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)
	require.Equal(t, models.StatusReserved, second.Status)

	reserved := models.StatusReserved
	_, err = svc.Edit(first.Reference, EditBookingInput{Status: &reserved})
	assert.ErrorIs(t, err, ErrBookingAlreadyCancelled)

	active := models.StatusActive
	_, err = svc.Edit(first.Reference, EditBookingInput{Status: &active})
	assert.ErrorIs(t, err, ErrBookingAlreadyCancelled)

	// อันแรกยัง cancelled และมี booking ไม่-cancelled แค่อันเดียวในช่วงวัน
	fresh, err := svc.GetByReference(first.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, fresh.Status)

	var overlapping int64
	require.NoError(t, db.Model(&models.Booking{}).
		Where("room_category_id = ?", cat.ID).
		Where("status IN ?", []models.BookingStatus{models.StatusReserved, models.StatusActive}).
		Count(&overlapping).Error)
	assert.Equal(t, int64(1), overlapping)
}

func TestCancelFreesUpRoom(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	booking, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)
	_, err = svc.Cancel(booking.Reference)
	require.NoError(t, err)

	_, err = svc.Create(onlineInput(cat.ID), nil)
	assert.NoError(t, err)
}

func TestEditDatesRechecksAndReprices(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	booking, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)
	require.Equal(t, 4000.0, booking.TotalAmount)

	// เลื่อนไปคร่อมเสาร์: ศุกร์ 15 -> อาทิตย์ 17 = 2000 + 2500
	ci, co := "2024-03-15", "2024-03-17"
	edited, err := svc.Edit(booking.Reference, EditBookingInput{CheckIn: &ci, CheckOut: &co})
	require.NoError(t, err)

	assert.Equal(t, 4500.0, edited.TotalAmount)
	assert.Equal(t, day(2024, time.March, 15), edited.CheckInDate)
	assert.Equal(t, 2, edited.Nights)
}

// คอลัมน์ add_ons เสีย: reprice ต้อง fail ดังๆ ไม่ใช่คิดยอดใหม่โดยทิ้ง add-on เงียบๆ
func TestEditRepriceRejectsCorruptAddOns(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	input := onlineInput(cat.ID)
	input.AddOns = []models.AddOn{{Name: "breakfast", UnitPrice: 150, Quantity: 2}}
	booking, err := svc.Create(input, nil)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("add_ons", "{broken").Error)

	ci, co := "2024-03-18", "2024-03-20"
	_, err = svc.Edit(booking.Reference, EditBookingInput{CheckIn: &ci, CheckOut: &co})
	assert.Error(t, err)

	// ยอดเดิมต้องไม่ถูกแตะ
	fresh, err := svc.GetByReference(booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, 4300.0, fresh.TotalAmount)
}

func TestEditDatesConflict(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	blocker := onlineInput(cat.ID)
	blocker.CheckIn = "2024-03-20"
	blocker.CheckOut = "2024-03-22"
	_, err := svc.Create(blocker, nil)
	require.NoError(t, err)

	booking, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)

	ci, co := "2024-03-20", "2024-03-22"
	_, err = svc.Edit(booking.Reference, EditBookingInput{CheckIn: &ci, CheckOut: &co})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestEditPaymentStatusPaidPromotes(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	booking, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)

	paid := models.PaymentPaid
	edited, err := svc.Edit(booking.Reference, EditBookingInput{PaymentStatus: &paid})
	require.NoError(t, err)

	assert.Equal(t, models.StatusActive, edited.Status)
	assert.Equal(t, models.PaymentPaid, edited.PaymentStatus)

	// อ่านกลับจาก DB ให้แน่ใจว่า persist จริง
	fresh, err := svc.GetByReference(booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, fresh.Status)
	assert.Equal(t, models.PaymentPaid, fresh.PaymentStatus)
}

func TestDeleteRequiresCancelled(t *testing.T) {
	db := openTestDB(t)
	seedSetting(t, db, true, 50)
	cat := seedCategory(t, db, "standard", 2000, 500, 1)
	svc := newBookingService(db)

	booking, err := svc.Create(onlineInput(cat.ID), nil)
	require.NoError(t, err)

	// reserved ลบไม่ได้
	err = svc.Delete(booking.Reference)
	assert.ErrorIs(t, err, ErrBookingNotCancelled)

	// active ก็ลบไม่ได้
	_, err = svc.ConfirmPayment(booking.Reference)
	require.NoError(t, err)
	err = svc.Delete(booking.Reference)
	assert.ErrorIs(t, err, ErrBookingNotCancelled)

	_, err = svc.Cancel(booking.Reference)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(booking.Reference))

	_, err = svc.GetByReference(booking.Reference)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByReferenceUnknown(t *testing.T) {
	db := openTestDB(t)
	svc := newBookingService(db)

	_, err := svc.GetByReference("GHNOPE123XX")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestApplyPaymentConfirmed(t *testing.T) {
	cases := []struct {
		name        string
		status      models.BookingStatus
		payStatus   models.PaymentStatus
		wantStatus  models.BookingStatus
		wantChanged bool
	}{
		{"reserved pending", models.StatusReserved, models.PaymentPending, models.StatusActive, true},
		{"active pending", models.StatusActive, models.PaymentPending, models.StatusActive, true},
		{"active paid", models.StatusActive, models.PaymentPaid, models.StatusActive, false},
		{"cancelled pending", models.StatusCancelled, models.PaymentPending, models.StatusCancelled, true},
		{"cancelled paid", models.StatusCancelled, models.PaymentPaid, models.StatusCancelled, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &models.Booking{Status: tc.status, PaymentStatus: tc.payStatus}
			changed := applyPaymentConfirmed(b)
			assert.Equal(t, tc.wantChanged, changed)
			assert.Equal(t, tc.wantStatus, b.Status)
			assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
		})
	}
}
