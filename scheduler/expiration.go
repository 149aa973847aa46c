// scheduler/expiration.go
package scheduler

import (
	"errors"
	"fmt"
	"log"
	"time"

	"guesthouse-backend/models"
	"guesthouse-backend/services"

	"gorm.io/gorm"
)

// ExpirationSweeper ยกเลิก booking แบบโอนเงินที่เลย hold deadline โดยยังไม่จ่าย
// deadline = created_at + hold period (วัน) จาก policy ของ payment_reminder
type ExpirationSweeper struct {
	DB       *gorm.DB
	Bookings *services.BookingService
	Notifier Notifier
}

func NewExpirationSweeper(db *gorm.DB, bookings *services.BookingService, notifier Notifier) *ExpirationSweeper {
	return &ExpirationSweeper{DB: db, Bookings: bookings, Notifier: notifier}
}

func (s *ExpirationSweeper) holdPeriodDays() (int, error) {
	var policy models.NotificationPolicy
	if err := s.DB.Where("kind = ?", models.KindPaymentReminder).First(&policy).Error; err != nil {
		return 0, fmt.Errorf("failed to load payment_reminder policy: %w", err)
	}
	if policy.OffsetDays <= 0 {
		return 0, fmt.Errorf("payment_reminder policy has no hold period")
	}
	return policy.OffsetDays, nil
}

// SweepOnce ประมวลผลหนึ่งรอบ คืนจำนวน booking ที่ถูกยกเลิก
// error รายตัว (DB/อีเมล) แค่ log แล้วข้าม booking นั้น - รอบถัดไปเก็บตกเอง
// การยกเลิกสำเร็จแล้วอีเมลพลาด ไม่ทำให้ยกเลิกซ้ำ (cancel มีผลไปแล้ว)
func (s *ExpirationSweeper) SweepOnce(now time.Time) (int, error) {
	holdDays, err := s.holdPeriodDays()
	if err != nil {
		return 0, err
	}
	deadline := now.Add(-time.Duration(holdDays) * 24 * time.Hour)

	var candidates []models.Booking
	if err := s.DB.
		Where("payment_method = ?", models.MethodBankTransfer).
		Where("status = ?", models.StatusReserved).
		Where("payment_status = ?", models.PaymentPending).
		Where("created_at < ?", deadline).
		Find(&candidates).Error; err != nil {
		return 0, fmt.Errorf("failed to query expired bookings: %w", err)
	}

	cancelled := 0
	notifyFailures := 0
	for _, booking := range candidates {
		if _, err := s.Bookings.Cancel(booking.Reference); err != nil {
			if errors.Is(err, services.ErrBookingAlreadyCancelled) {
				continue
			}
			log.Printf("sweeper: failed to cancel %s: %v", booking.Reference, err)
			continue
		}
		cancelled++

		subject, body := RenderBookingExpired(&booking, holdDays)
		if err := s.Notifier.Send(booking.GuestEmail, subject, body); err != nil {
			notifyFailures++
			log.Printf("sweeper: failed to notify %s about expiry: %v", booking.Reference, err)
		}
	}

	if notifyFailures > 0 {
		log.Printf("sweeper: %d expiry notification(s) failed (non-fatal)", notifyFailures)
	}
	return cancelled, nil
}
