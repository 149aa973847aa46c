package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingStatus คือสถานะหลักของการจอง
type BookingStatus string

const (
	StatusReserved  BookingStatus = "reserved"
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusReserved, StatusActive, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus - แกนแยกจาก BookingStatus
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCard         PaymentMethod = "card"
	MethodOther        PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodCard, MethodOther:
		return true
	}
	return false
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Reference เป็นรหัสจองแบบสั้นที่ลูกค้าเห็น (time-derived + random suffix)
	Reference string `gorm:"column:reference;size:32;uniqueIndex" json:"reference"`

	RoomCategoryID uint         `gorm:"index;column:room_category_id" json:"room_category_id"`
	RoomCategory   RoomCategory `gorm:"foreignKey:RoomCategoryID;references:ID" json:"room_category,omitempty"`

	CheckInDate  time.Time `gorm:"column:check_in_date;index" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date;index" json:"check_out_date"`
	Nights       int       `gorm:"column:nights" json:"nights"`

	GuestName  string `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestPhone string `gorm:"column:guest_phone;size:50" json:"guest_phone"`
	GuestEmail string `gorm:"column:guest_email;size:150" json:"guest_email"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	// RateNights เก็บ breakdown ราคารายคืน [{date, surcharge, price}]
	RateNights  datatypes.JSON `gorm:"column:rate_nights" json:"rate_nights,omitempty"`
	TotalAmount float64        `gorm:"column:total_amount" json:"total_amount"`
	DueAmount   float64        `gorm:"column:due_amount" json:"due_amount"`
	AddOns      datatypes.JSON `gorm:"column:add_ons" json:"add_ons,omitempty"`

	PaymentMethod PaymentMethod `gorm:"column:payment_method;size:32" json:"payment_method"`
	Status        BookingStatus `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"column:payment_status;size:32;index" json:"payment_status"`

	// NotificationsSent คือ ledger กันส่งซ้ำ (JSON array ของ kind)
	NotificationsSent   datatypes.JSON `gorm:"column:notifications_sent" json:"notifications_sent,omitempty"`
	NotificationsOptOut bool           `gorm:"column:notifications_opt_out;default:false" json:"notifications_opt_out"`
}

// AddOn is one bookable extra ({name, unitPrice, quantity} in the JSON column).
type AddOn struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// NightRate is one entry of the per-night price breakdown.
type NightRate struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Surcharge bool    `json:"surcharge"`
	Price     float64 `json:"price"`
}
