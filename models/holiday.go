package models

import "time"

// Holiday marks a date as a price-surcharge day, independent of weekends
// (weekends are computed from the weekday, see PropertySetting.WeekendSurcharge).
type Holiday struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"column:date;uniqueIndex" json:"date"`
	Label     string    `gorm:"size:255" json:"label"`
	CreatedAt time.Time `json:"created_at"`
}
