package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomCategory คือประเภทห้องพัก (inventory class) - ปิดการใช้งานด้วย Active เท่านั้น
// ห้ามลบทิ้งตราบใดที่ยังมี booking อ้างถึง
type RoomCategory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name             string  `gorm:"size:64;uniqueIndex" json:"name"`
	DisplayName      string  `gorm:"size:255" json:"display_name"`
	BasePrice        float64 `gorm:"column:base_price" json:"base_price"`
	HolidaySurcharge float64 `gorm:"column:holiday_surcharge" json:"holiday_surcharge"`

	// Units = จำนวนห้องในประเภทนี้ (capacity); ค่าเริ่มต้น 1
	Units int `gorm:"column:units;default:1" json:"units"`

	// ไม่ใส่ gorm default บน bool: Create ที่ตั้ง false ต้องได้ false จริง
	Active       bool `gorm:"column:active" json:"active"`
	DisplayOrder int  `gorm:"column:display_order;default:0" json:"display_order"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
