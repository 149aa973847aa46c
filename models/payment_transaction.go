package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentTransaction บันทึก callback จาก gateway หนึ่งครั้งต่อ transaction id
// unique index บน transaction_id ทำให้ callback ที่ gateway ยิงซ้ำถูกมองเห็นและไม่ประมวลผลซ้ำ
type PaymentTransaction struct {
	ID string `gorm:"primaryKey;size:36" json:"id"` // uuid

	BookingReference string         `gorm:"column:booking_reference;size:32;index" json:"booking_reference"`
	TransactionID    string         `gorm:"column:transaction_id;size:128;uniqueIndex" json:"transaction_id"`
	ResultCode       string         `gorm:"column:result_code;size:16" json:"result_code"`
	Amount           float64        `gorm:"column:amount" json:"amount"`
	GatewayTimestamp string         `gorm:"column:gateway_timestamp;size:32" json:"gateway_timestamp"`
	RawPayload       datatypes.JSON `gorm:"column:raw_payload" json:"raw_payload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
