package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// NotificationsSentList decodes the idempotency ledger column.
func (b *Booking) NotificationsSentList() []NotificationKind {
	if len(b.NotificationsSent) == 0 {
		return nil
	}
	var kinds []NotificationKind
	if err := json.Unmarshal(b.NotificationsSent, &kinds); err != nil {
		return nil
	}
	return kinds
}

// HasNotificationSent reports whether kind is already recorded in the ledger.
func (b *Booking) HasNotificationSent(kind NotificationKind) bool {
	for _, k := range b.NotificationsSentList() {
		if k == kind {
			return true
		}
	}
	return false
}

// AppendNotificationKind คืน ledger ใหม่ที่เพิ่ม kind (ถ้ายังไม่มี)
// ไม่แก้ค่าเดิม - ผู้เรียกต้อง write แบบ conditional เทียบค่าเก่าเอง
func AppendNotificationKind(raw datatypes.JSON, kind NotificationKind) (datatypes.JSON, error) {
	var kinds []NotificationKind
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &kinds); err != nil {
			return nil, err
		}
	}
	for _, k := range kinds {
		if k == kind {
			return raw, nil
		}
	}
	kinds = append(kinds, kind)
	out, err := json.Marshal(kinds)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}
