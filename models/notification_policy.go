package models

import "time"

// NotificationKind - ชนิดของอีเมลแจ้งเตือนตามรอบเวลา
type NotificationKind string

const (
	KindPaymentReminder NotificationKind = "payment_reminder"
	KindCheckinReminder NotificationKind = "checkin_reminder"
	KindFeedbackRequest NotificationKind = "feedback_request"
)

// AllNotificationKinds in dispatch order.
var AllNotificationKinds = []NotificationKind{
	KindPaymentReminder,
	KindCheckinReminder,
	KindFeedbackRequest,
}

func (k NotificationKind) Valid() bool {
	switch k {
	case KindPaymentReminder, KindCheckinReminder, KindFeedbackRequest:
		return true
	}
	return false
}

// NotificationPolicy กำหนด timing ต่อ kind:
//   - payment_reminder: OffsetDays = hold period (วัน) นับจาก created_at
//     และใช้ค่าเดียวกันเป็น deadline ของ expiration sweeper
//   - checkin_reminder: ส่งเมื่อ check_in_date - OffsetDays == วันนี้
//   - feedback_request: ส่งเมื่อ check_out_date + OffsetDays == วันนี้
type NotificationPolicy struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Kind NotificationKind `gorm:"size:32;uniqueIndex" json:"kind"`
	// ไม่ใส่ gorm default บน bool: Create ที่ตั้ง false ต้องได้ false จริง
	Enabled      bool `gorm:"column:enabled" json:"enabled"`
	OffsetDays   int  `gorm:"column:offset_days" json:"offset_days"`
	DispatchHour int  `gorm:"column:dispatch_hour" json:"dispatch_hour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
