package models

import "time"

type PropertySetting struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`

	CurrencyCode string `gorm:"size:8;default:'THB'" json:"currency_code"`

	// WeekendSurcharge: คิด surcharge วันเสาร์/อาทิตย์เหมือนวันหยุดนักขัตฤกษ์
	// ไม่ใส่ gorm default: ไม่งั้น Create ที่ตั้ง false จะถูก gorm ตัดทิ้งแล้วได้ค่า default แทน
	WeekendSurcharge bool `gorm:"column:weekend_surcharge" json:"weekend_surcharge"`

	// DepositPercent ใช้คำนวณ due_amount เมื่อลูกค้าเลือกจ่ายมัดจำ
	DepositPercent int `gorm:"column:deposit_percent;default:50" json:"deposit_percent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
