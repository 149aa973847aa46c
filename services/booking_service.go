// services/booking_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService เป็น wrapper รอบ *gorm.DB เพื่อแยก logic วงจรชีวิตของ booking
type BookingService struct {
	DB           *gorm.DB
	Pricing      *PricingService
	Availability *AvailabilityService
}

func NewBookingService(db *gorm.DB, pricing *PricingService, availability *AvailabilityService) *BookingService {
	return &BookingService{DB: db, Pricing: pricing, Availability: availability}
}

// ---------------------------
// Inputs
// ---------------------------

type CreateBookingInput struct {
	CheckIn        string
	CheckOut       string
	RoomCategoryID uint
	GuestName      string
	GuestPhone     string
	GuestEmail     string
	Adults         int
	Children       int
	PaymentMethod  models.PaymentMethod
	Deposit        bool
	AddOns         []models.AddOn
}

// ManualState ใช้เฉพาะ operator สร้าง booking เอง: กำหนดสถานะตรงๆ และปิดการแจ้งเตือน
type ManualState struct {
	Status        models.BookingStatus
	PaymentStatus models.PaymentStatus
}

type EditBookingInput struct {
	CheckIn        *string
	CheckOut       *string
	RoomCategoryID *uint
	GuestName      *string
	GuestPhone     *string
	GuestEmail     *string
	Adults         *int
	Children       *int
	TotalAmount    *float64
	DueAmount      *float64
	Status         *models.BookingStatus
	PaymentStatus  *models.PaymentStatus
	AddOns         []models.AddOn
}

// ---------------------------
// Helpers
// ---------------------------

func parseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	ci, err := time.Parse(dateLayout, strings.TrimSpace(checkIn))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	co, err := time.Parse(dateLayout, strings.TrimSpace(checkOut))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	if !co.After(ci) {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	return ci, co, nil
}

func isDuplicateKeyErr(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

func addOnsTotal(addOns []models.AddOn) float64 {
	var sum float64
	for _, a := range addOns {
		q := a.Quantity
		if q <= 0 {
			q = 1
		}
		sum += a.UnitPrice * float64(q)
	}
	return sum
}

func (s *BookingService) depositPercent() int {
	var setting models.PropertySetting
	if err := s.DB.First(&setting).Error; err != nil {
		return 50
	}
	if setting.DepositPercent <= 0 || setting.DepositPercent > 100 {
		return 50
	}
	return setting.DepositPercent
}

// ---------------------------
// Create
// ---------------------------

// Create สร้าง booking ใหม่: จองออนไลน์ manual=nil (reserved/pending),
// operator manual entry ส่ง manual มาเพื่อกำหนดสถานะเองและปิดการแจ้งเตือน
// ตรวจห้องว่าง + insert อยู่ใน transaction เดียวกัน กัน race ระหว่างสอง request พร้อมกัน
func (s *BookingService) Create(input CreateBookingInput, manual *ManualState) (*models.Booking, error) {
	ci, co, err := parseStayDates(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.GuestName) == "" || strings.TrimSpace(input.GuestEmail) == "" {
		return nil, ErrMissingContact
	}
	if !input.PaymentMethod.Valid() {
		return nil, ErrInvalidMethod
	}
	if input.Adults <= 0 {
		input.Adults = 1
	}
	if input.Children < 0 {
		return nil, ErrInvalidOccupancy
	}

	var category models.RoomCategory
	if err := s.DB.First(&category, input.RoomCategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("db error checking category: %w", err)
	}
	if !category.Active {
		return nil, ErrCategoryInactive
	}

	quote, err := s.Pricing.PriceStay(ci, co, &category)
	if err != nil {
		return nil, err
	}
	rateJSON, err := json.Marshal(quote.Nights)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rate nights: %w", err)
	}

	total := quote.Total + addOnsTotal(input.AddOns)
	due := total
	if input.Deposit {
		due = total * float64(s.depositPercent()) / 100.0
	}

	var addOnsJSON datatypes.JSON
	if len(input.AddOns) > 0 {
		raw, mErr := json.Marshal(input.AddOns)
		if mErr != nil {
			return nil, fmt.Errorf("failed to marshal add-ons: %w", mErr)
		}
		addOnsJSON = datatypes.JSON(raw)
	}

	status := models.StatusReserved
	payStatus := models.PaymentPending
	optOut := false
	if manual != nil {
		if !manual.Status.Valid() || !manual.PaymentStatus.Valid() {
			return nil, ErrInvalidStatus
		}
		status = manual.Status
		payStatus = manual.PaymentStatus
		optOut = true
	}

	booking := &models.Booking{
		RoomCategoryID:      category.ID,
		CheckInDate:         Midnight(ci),
		CheckOutDate:        Midnight(co),
		Nights:              quote.NightCount,
		GuestName:           strings.TrimSpace(input.GuestName),
		GuestPhone:          strings.TrimSpace(input.GuestPhone),
		GuestEmail:          strings.TrimSpace(input.GuestEmail),
		Adults:              input.Adults,
		Children:            input.Children,
		RateNights:          datatypes.JSON(rateJSON),
		TotalAmount:         total,
		DueAmount:           due,
		AddOns:              addOnsJSON,
		PaymentMethod:       input.PaymentMethod,
		Status:              status,
		PaymentStatus:       payStatus,
		NotificationsOptOut: optOut,
	}
	// จ่ายแล้วตั้งแต่สร้าง (manual entry) ก็ต้องผ่าน transition กลางเหมือนทุก path
	if payStatus == models.PaymentPaid {
		booking.PaymentStatus = models.PaymentPending
		applyPaymentConfirmed(booking)
	}

	// create พร้อม retry เมื่อ reference ชน unique index
	maxRetries := 5
	var txErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		ref, gErr := utils.GenerateBookingReference(time.Now())
		if gErr != nil {
			return nil, fmt.Errorf("failed to generate reference: %w", gErr)
		}
		booking.Reference = ref

		txErr = s.DB.Transaction(func(tx *gorm.DB) error {
			ok, aErr := s.Availability.isAvailableTx(tx, ci, co, category.ID, 0)
			if aErr != nil {
				return aErr
			}
			if !ok {
				return ErrRoomUnavailable
			}
			return tx.Create(booking).Error
		})
		if txErr == nil {
			break
		}
		if errors.Is(txErr, ErrRoomUnavailable) {
			return nil, ErrRoomUnavailable
		}
		if isDuplicateKeyErr(txErr) {
			log.Printf("booking reference collision (attempt %d) - retrying", attempt+1)
			booking.ID = 0
			continue
		}
		return nil, fmt.Errorf("failed to create booking: %w", txErr)
	}
	if txErr != nil {
		return nil, fmt.Errorf("failed to create booking after retries: %w", txErr)
	}

	booking.RoomCategory = category
	return booking, nil
}

// ---------------------------
// Lookup
// ---------------------------

func (s *BookingService) GetByReference(ref string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("RoomCategory").
		Where("reference = ?", strings.TrimSpace(ref)).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) List() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.Preload("RoomCategory").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// ---------------------------
// Transitions
// ---------------------------

// ConfirmPayment ตั้ง payment_status=paid และเลื่อน reserved -> active
// idempotent: เรียกซ้ำบน booking ที่จ่ายแล้ว = no-op ไม่ใช่ error
func (s *BookingService) ConfirmPayment(ref string) (*models.Booking, error) {
	booking, err := s.GetByReference(ref)
	if err != nil {
		return nil, err
	}

	if !applyPaymentConfirmed(booking) {
		return booking, nil
	}

	if err := s.DB.Model(booking).Updates(map[string]interface{}{
		"status":         booking.Status,
		"payment_status": booking.PaymentStatus,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}
	return booking, nil
}

// Cancel เปลี่ยนเป็น cancelled (payment_status คงเดิม)
// cancelled เป็นปลายทาง ยกเลิกซ้ำถือเป็น conflict
func (s *BookingService) Cancel(ref string) (*models.Booking, error) {
	booking, err := s.GetByReference(ref)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case models.StatusCancelled:
		return nil, ErrBookingAlreadyCancelled
	case models.StatusReserved, models.StatusActive:
		// legal
	default:
		return nil, ErrInvalidStatus
	}

	booking.Status = models.StatusCancelled
	if err := s.DB.Model(booking).Update("status", models.StatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	return booking, nil
}

// Edit ให้ operator แก้ไข field ต่างๆ
// ถ้าแก้วันที่/ประเภทห้อง: ตรวจห้องว่างใหม่ (ไม่นับตัวเอง) และคิดราคาใหม่
// ถ้าตั้ง payment_status=paid ระหว่างที่ status=reserved: เลื่อนเป็น active ผ่าน transition กลาง
func (s *BookingService) Edit(ref string, input EditBookingInput) (*models.Booking, error) {
	booking, err := s.GetByReference(ref)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.StatusCancelled && input.Status == nil {
		return nil, ErrBookingAlreadyCancelled
	}

	updates := map[string]interface{}{}

	if input.GuestName != nil {
		booking.GuestName = strings.TrimSpace(*input.GuestName)
		updates["guest_name"] = booking.GuestName
	}
	if input.GuestPhone != nil {
		booking.GuestPhone = strings.TrimSpace(*input.GuestPhone)
		updates["guest_phone"] = booking.GuestPhone
	}
	if input.GuestEmail != nil {
		booking.GuestEmail = strings.TrimSpace(*input.GuestEmail)
		updates["guest_email"] = booking.GuestEmail
	}
	if input.Adults != nil {
		if *input.Adults <= 0 {
			return nil, ErrInvalidOccupancy
		}
		booking.Adults = *input.Adults
		updates["adults"] = booking.Adults
	}
	if input.Children != nil {
		if *input.Children < 0 {
			return nil, ErrInvalidOccupancy
		}
		booking.Children = *input.Children
		updates["children"] = booking.Children
	}
	if input.AddOns != nil {
		raw, mErr := json.Marshal(input.AddOns)
		if mErr != nil {
			return nil, fmt.Errorf("failed to marshal add-ons: %w", mErr)
		}
		booking.AddOns = datatypes.JSON(raw)
		updates["add_ons"] = booking.AddOns
	}

	// เปลี่ยนช่วงวันหรือประเภทห้อง -> ตรวจว่างใหม่ + reprice
	if input.CheckIn != nil || input.CheckOut != nil || input.RoomCategoryID != nil {
		ciStr := booking.CheckInDate.Format(dateLayout)
		coStr := booking.CheckOutDate.Format(dateLayout)
		if input.CheckIn != nil {
			ciStr = *input.CheckIn
		}
		if input.CheckOut != nil {
			coStr = *input.CheckOut
		}
		ci, co, dErr := parseStayDates(ciStr, coStr)
		if dErr != nil {
			return nil, dErr
		}

		categoryID := booking.RoomCategoryID
		if input.RoomCategoryID != nil {
			categoryID = *input.RoomCategoryID
		}
		var category models.RoomCategory
		if err := s.DB.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("db error checking category: %w", err)
		}

		ok, aErr := s.Availability.IsAvailable(ci, co, categoryID, booking.ID)
		if aErr != nil {
			return nil, aErr
		}
		if !ok {
			return nil, ErrRoomUnavailable
		}

		quote, pErr := s.Pricing.PriceStay(ci, co, &category)
		if pErr != nil {
			return nil, pErr
		}
		rateJSON, mErr := json.Marshal(quote.Nights)
		if mErr != nil {
			return nil, fmt.Errorf("failed to marshal rate nights: %w", mErr)
		}

		booking.CheckInDate = Midnight(ci)
		booking.CheckOutDate = Midnight(co)
		booking.Nights = quote.NightCount
		booking.RoomCategoryID = categoryID
		booking.RateNights = datatypes.JSON(rateJSON)

		var addOns []models.AddOn
		if len(booking.AddOns) > 0 {
			if uErr := json.Unmarshal(booking.AddOns, &addOns); uErr != nil {
				return nil, fmt.Errorf("failed to decode add-ons for %s: %w", booking.Reference, uErr)
			}
		}
		booking.TotalAmount = quote.Total + addOnsTotal(addOns)
		updates["check_in_date"] = booking.CheckInDate
		updates["check_out_date"] = booking.CheckOutDate
		updates["nights"] = booking.Nights
		updates["room_category_id"] = booking.RoomCategoryID
		updates["rate_nights"] = booking.RateNights
		updates["total_amount"] = booking.TotalAmount
	}

	if input.TotalAmount != nil {
		booking.TotalAmount = *input.TotalAmount
		updates["total_amount"] = booking.TotalAmount
	}
	if input.DueAmount != nil {
		booking.DueAmount = *input.DueAmount
		updates["due_amount"] = booking.DueAmount
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		// cancelled เป็นปลายทาง: ห้าม revive ผ่าน edit ไม่งั้นชนกับ booking
		// ที่จองทับช่วงวันไปแล้วหลังยกเลิก
		if booking.Status == models.StatusCancelled && *input.Status != models.StatusCancelled {
			return nil, ErrBookingAlreadyCancelled
		}
		booking.Status = *input.Status
		updates["status"] = booking.Status
	}
	if input.PaymentStatus != nil {
		if !input.PaymentStatus.Valid() {
			return nil, ErrInvalidStatus
		}
		switch *input.PaymentStatus {
		case models.PaymentPaid:
			applyPaymentConfirmed(booking)
		case models.PaymentPending:
			booking.PaymentStatus = models.PaymentPending
		}
		updates["status"] = booking.Status
		updates["payment_status"] = booking.PaymentStatus
	}

	if len(updates) == 0 {
		return booking, nil
	}
	if err := s.DB.Model(booking).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return booking, nil
}

// Delete ลบได้เฉพาะ booking ที่ cancelled แล้วเท่านั้น (soft delete)
func (s *BookingService) Delete(ref string) error {
	booking, err := s.GetByReference(ref)
	if err != nil {
		return err
	}
	if booking.Status != models.StatusCancelled {
		return ErrBookingNotCancelled
	}
	if err := s.DB.Delete(booking).Error; err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}
