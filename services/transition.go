package services

import "guesthouse-backend/models"

// applyPaymentConfirmed คือ transition กลางจุดเดียวของ "ได้รับเงินแล้ว"
// ทุก path ที่ทำให้ payment_status เป็น paid (callback, operator edit, confirm ตรงๆ)
// ต้องเรียกผ่านฟังก์ชันนี้เท่านั้น เพื่อไม่ให้ logic เลื่อนสถานะกระจายหลายที่
//
// กติกา: payment_status -> paid เสมอ; ถ้า status เป็น reserved ให้เลื่อนเป็น active
// cancelled เป็นสถานะปลายทาง ไม่เลื่อน status ออกจาก cancelled
// คืนค่า true เมื่อมี field เปลี่ยนจริง (เรียกซ้ำบน booking ที่จ่ายแล้ว = no-op)
func applyPaymentConfirmed(b *models.Booking) bool {
	changed := false

	if b.PaymentStatus != models.PaymentPaid {
		b.PaymentStatus = models.PaymentPaid
		changed = true
	}

	switch b.Status {
	case models.StatusReserved:
		b.Status = models.StatusActive
		changed = true
	case models.StatusActive, models.StatusCancelled:
		// no status change
	}

	return changed
}
