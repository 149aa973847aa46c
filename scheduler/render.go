// scheduler/render.go
package scheduler

import (
	"encoding/json"
	"fmt"
	"strings"

	"guesthouse-backend/models"
)

const emailDateLayout = "2006-01-02"

// RenderNotification สร้าง subject/body ของอีเมลตาม kind
// section ที่เป็นเงื่อนไข: มัดจำ vs จ่ายเต็ม, รายการ add-on (ถ้ามี)
func RenderNotification(kind models.NotificationKind, b *models.Booking, offsetDays int) (string, string) {
	switch kind {
	case models.KindPaymentReminder:
		subject := fmt.Sprintf("Payment reminder - booking %s", b.Reference)
		var sb strings.Builder
		fmt.Fprintf(&sb, "Dear %s,\n\n", b.GuestName)
		fmt.Fprintf(&sb, "This is a reminder that your booking %s is still awaiting payment.\n", b.Reference)
		fmt.Fprintf(&sb, "Stay: %s to %s (%d night(s))\n",
			b.CheckInDate.Format(emailDateLayout), b.CheckOutDate.Format(emailDateLayout), b.Nights)
		sb.WriteString(amountSection(b))
		sb.WriteString(addOnSection(b))
		fmt.Fprintf(&sb, "\nUnpaid reservations are released %d day(s) after booking. ", offsetDays)
		sb.WriteString("Please transfer the amount due to keep your reservation.\n")
		return subject, sb.String()

	case models.KindCheckinReminder:
		subject := fmt.Sprintf("See you soon - check-in for booking %s", b.Reference)
		var sb strings.Builder
		fmt.Fprintf(&sb, "Dear %s,\n\n", b.GuestName)
		fmt.Fprintf(&sb, "Your stay begins on %s. We look forward to welcoming you!\n",
			b.CheckInDate.Format(emailDateLayout))
		fmt.Fprintf(&sb, "Booking reference: %s\n", b.Reference)
		sb.WriteString(addOnSection(b))
		return subject, sb.String()

	case models.KindFeedbackRequest:
		subject := fmt.Sprintf("How was your stay? - booking %s", b.Reference)
		var sb strings.Builder
		fmt.Fprintf(&sb, "Dear %s,\n\n", b.GuestName)
		fmt.Fprintf(&sb, "Thank you for staying with us (booking %s, checked out %s).\n",
			b.Reference, b.CheckOutDate.Format(emailDateLayout))
		sb.WriteString("We would love to hear your feedback - simply reply to this email.\n")
		return subject, sb.String()
	}

	return fmt.Sprintf("Booking %s", b.Reference), fmt.Sprintf("Update for booking %s.\n", b.Reference)
}

// RenderBookingExpired คืออีเมลแจ้งว่า booking ถูกยกเลิกเพราะเลยกำหนดโอน
func RenderBookingExpired(b *models.Booking, holdDays int) (string, string) {
	subject := fmt.Sprintf("Booking %s cancelled - payment not received", b.Reference)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dear %s,\n\n", b.GuestName)
	fmt.Fprintf(&sb, "Your booking %s (%s to %s) has been cancelled because payment was not received within %d day(s).\n",
		b.Reference,
		b.CheckInDate.Format(emailDateLayout),
		b.CheckOutDate.Format(emailDateLayout),
		holdDays)
	sb.WriteString("If you still wish to stay with us, please make a new booking.\n")
	return subject, sb.String()
}

func amountSection(b *models.Booking) string {
	if b.DueAmount > 0 && b.DueAmount < b.TotalAmount {
		return fmt.Sprintf("Deposit due: %.2f (of total %.2f)\n", b.DueAmount, b.TotalAmount)
	}
	return fmt.Sprintf("Amount due: %.2f\n", b.TotalAmount)
}

func addOnSection(b *models.Booking) string {
	if len(b.AddOns) == 0 {
		return ""
	}
	var addOns []models.AddOn
	if err := json.Unmarshal(b.AddOns, &addOns); err != nil || len(addOns) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Extras:\n")
	for _, a := range addOns {
		q := a.Quantity
		if q <= 0 {
			q = 1
		}
		fmt.Fprintf(&sb, " - %s x%d (%.2f)\n", a.Name, q, a.UnitPrice*float64(q))
	}
	return sb.String()
}
