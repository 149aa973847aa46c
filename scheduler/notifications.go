// scheduler/notifications.go
package scheduler

import (
	"fmt"
	"log"
	"time"

	"guesthouse-backend/models"
	"guesthouse-backend/services"

	"gorm.io/gorm"
)

// NotificationDispatcher สแกน booking ตาม policy สามชนิดแล้วส่งอีเมลไม่เกิน
// หนึ่งครั้งต่อ (booking, kind) ตลอดอายุ booking โดยใช้ notifications_sent เป็น ledger
type NotificationDispatcher struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewNotificationDispatcher(db *gorm.DB, notifier Notifier) *NotificationDispatcher {
	return &NotificationDispatcher{DB: db, Notifier: notifier}
}

// RunOnce รันหนึ่งรอบ (ปกติ cron เรียกต้นชั่วโมง)
// policy จะถูกส่งเฉพาะชั่วโมงที่ตรง dispatch_hour - single-shot ต่อวันแบบหยาบ
// โดยไม่ต้องเก็บ last-run state (ข้อแลกเปลี่ยน: process ดับตรงชั่วโมงนั้นพอดี = ข้ามวัน)
func (d *NotificationDispatcher) RunOnce(now time.Time) error {
	var policies []models.NotificationPolicy
	if err := d.DB.Where("enabled = ?", true).Find(&policies).Error; err != nil {
		return fmt.Errorf("failed to load notification policies: %w", err)
	}

	for _, policy := range policies {
		if !policy.Kind.Valid() {
			log.Printf("dispatcher: unknown notification kind %q - skipping", policy.Kind)
			continue
		}
		if now.Hour() != policy.DispatchHour {
			continue
		}
		if err := d.dispatchKind(policy, now); err != nil {
			// รอบนี้พลาดทั้ง kind -> log แล้วไปต่อ kind อื่น
			log.Printf("dispatcher: %s batch failed: %v", policy.Kind, err)
		}
	}
	return nil
}

// candidates เลือก booking ที่เข้าเงื่อนไข anchor date + eligibility ของ kind
func (d *NotificationDispatcher) candidates(policy models.NotificationPolicy, now time.Time) ([]models.Booking, error) {
	today := services.Midnight(now)
	q := d.DB.Where("notifications_opt_out = ?", false)

	switch policy.Kind {
	case models.KindPaymentReminder:
		// anchor = created_at + hold period: เตือนวันที่ครบกำหนดโอน
		dayStart := today.AddDate(0, 0, -policy.OffsetDays)
		q = q.Where("payment_method = ?", models.MethodBankTransfer).
			Where("payment_status = ?", models.PaymentPending).
			Where("status IN ?", []models.BookingStatus{models.StatusReserved, models.StatusActive}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayStart.AddDate(0, 0, 1))

	case models.KindCheckinReminder:
		// check_in_date - offset == วันนี้
		target := today.AddDate(0, 0, policy.OffsetDays)
		q = q.Where("status = ?", models.StatusActive).
			Where("payment_status = ?", models.PaymentPaid).
			Where("check_in_date = ?", target)

	case models.KindFeedbackRequest:
		// check_out_date + offset == วันนี้
		target := today.AddDate(0, 0, -policy.OffsetDays)
		q = q.Where("status = ?", models.StatusActive).
			Where("check_out_date = ?", target)
	}

	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s candidates: %w", policy.Kind, err)
	}
	return list, nil
}

func (d *NotificationDispatcher) dispatchKind(policy models.NotificationPolicy, now time.Time) error {
	list, err := d.candidates(policy, now)
	if err != nil {
		return err
	}

	for _, booking := range list {
		if booking.HasNotificationSent(policy.Kind) {
			continue
		}

		subject, body := RenderNotification(policy.Kind, &booking, policy.OffsetDays)
		if err := d.Notifier.Send(booking.GuestEmail, subject, body); err != nil {
			// ไม่แตะ ledger -> รอบหน้าลองใหม่เอง
			log.Printf("dispatcher: send %s to %s failed: %v", policy.Kind, booking.Reference, err)
			continue
		}

		if err := d.recordSent(&booking, policy.Kind); err != nil {
			log.Printf("dispatcher: record %s for %s failed: %v", policy.Kind, booking.Reference, err)
		}
	}
	return nil
}

// recordSent บันทึก kind ลง ledger แบบ conditional write เทียบค่าที่อ่านมา
// ถ้า dispatcher อีกตัวบันทึกแทรกไปก่อน RowsAffected จะเป็น 0 - ถือว่าบันทึกแล้ว ไม่ทับ
func (d *NotificationDispatcher) recordSent(booking *models.Booking, kind models.NotificationKind) error {
	prev := booking.NotificationsSent
	next, err := models.AppendNotificationKind(prev, kind)
	if err != nil {
		return err
	}

	q := d.DB.Model(&models.Booking{}).Where("id = ?", booking.ID)
	if len(prev) == 0 {
		q = q.Where("notifications_sent IS NULL OR notifications_sent = ''")
	} else {
		q = q.Where("notifications_sent = ?", string(prev))
	}

	res := q.Update("notifications_sent", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		log.Printf("dispatcher: ledger for %s changed concurrently - %s assumed recorded elsewhere", booking.Reference, kind)
	}
	return nil
}
